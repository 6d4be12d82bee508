package testing

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/toggle/pkg/dom"
)

// UpdateEnv names the environment variable that makes MatchesFile rewrite
// golden files instead of comparing against them.
const UpdateEnv = "TOGGLE_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the document below the body, the focused element and
// the notifications recorded so far.
type Snapshot struct {
	Body  *ElementNode `yaml:"body"`
	Focus string       `yaml:"focus,omitempty"`
	Trace []string     `yaml:"trace,omitempty"`
}

// ElementNode is one serialized element.
type ElementNode struct {
	Tag      string            `yaml:"tag"`
	Classes  []string          `yaml:"classes,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Children []*ElementNode    `yaml:"children,omitempty"`
}

type styled interface {
	Styles() map[string]string
}

// Snapshot captures the harness document and recorder.
func (h *Harness) Snapshot() *Snapshot {
	snap := &Snapshot{
		Body:  captureElement(h.Tree.Body()),
		Trace: h.Recorder.Names(),
	}
	if el := h.Tree.ActiveElement(); el != nil {
		snap.Focus = elementLabel(el)
	}
	return snap
}

func captureElement(el dom.Element) *ElementNode {
	n := &ElementNode{Tag: strings.ToLower(el.TagName())}
	if classes := el.Classes(); len(classes) > 0 {
		n.Classes = classes
	}
	if attrs := el.Attrs(); len(attrs) > 0 {
		n.Attrs = attrs
	}
	if s, ok := el.(styled); ok {
		if style := s.Styles(); len(style) > 0 {
			n.Style = style
		}
	}
	for _, child := range el.Children() {
		n.Children = append(n.Children, captureElement(child))
	}
	return n
}

func elementLabel(el dom.Element) string {
	if id, ok := el.Attr("id"); ok && id != "" {
		return "#" + id
	}
	return strings.ToLower(el.TagName())
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff; with TOGGLE_UPDATE_SNAPSHOTS=1 the file is rewritten.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("update snapshot: %v", err)
		}
		return
	}

	want, err := LoadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("load snapshot: %v", err)
		return
	}

	if diff := s.Diff(want); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got)\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to path, creating directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a diff from want to s, or "" when they are equal.
func (s *Snapshot) Diff(want *Snapshot) string {
	return cmp.Diff(want, s)
}

// Marshal encodes the snapshot as YAML with two-space indentation.
func (s *Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshot reads a golden file written by UpdateFile.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	return &snap, nil
}
