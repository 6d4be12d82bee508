package page

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Version is the runtime version pages are checked against.
var Version = "v0.1.0"

// CheckRuntime reports whether a page requiring version required can run on
// the current runtime. An empty requirement always passes. The major
// versions must match and the runtime must not be older than required.
func CheckRuntime(required string) error {
	if required == "" {
		return nil
	}
	if !semver.IsValid(required) {
		return pageError("page.CheckRuntime", fmt.Errorf("invalid runtime version %q", required))
	}
	if semver.Major(required) != semver.Major(Version) {
		return pageError("page.CheckRuntime", fmt.Errorf("page needs runtime %s, have %s", semver.Major(required), Version))
	}
	if semver.Compare(Version, required) < 0 {
		return pageError("page.CheckRuntime", fmt.Errorf("page needs runtime %s or newer, have %s", required, Version))
	}
	return nil
}
