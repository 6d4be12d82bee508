package lifecycle

import "github.com/go-drift/toggle/pkg/dom"

// Hooks specializes an [Engine].
//
// BeforeShow runs after the show is accepted and before the transitioning
// marker is applied. AfterShow runs at completion, before the shown
// notification. BeforeHide and AfterHide mirror them for hide.
// OnConflictingInstanceOpen runs when a trigger targets this instance while
// open, a different instance of the same kind, is open. Release runs during
// dispose.
type Hooks interface {
	BeforeShow()
	AfterShow()
	BeforeHide()
	AfterHide()
	OnConflictingInstanceOpen(open *Engine, trigger dom.Element)
	Release()
}

// NopHooks implements [Hooks] with no-ops. Embed it to override a subset.
type NopHooks struct{}

func (NopHooks) BeforeShow()                                    {}
func (NopHooks) AfterShow()                                     {}
func (NopHooks) BeforeHide()                                    {}
func (NopHooks) AfterHide()                                     {}
func (NopHooks) OnConflictingInstanceOpen(*Engine, dom.Element) {}
func (NopHooks) Release()                                       {}
