package banners

import (
	"fmt"

	"github.com/common-fate/withkube/internal/build"
)

// WithVersion renders the version line printed by --version.
func WithVersion() string {
	if build.IsDev() {
		return fmt.Sprintf("withkube version: %s\n", build.Version)
	}
	return fmt.Sprintf("withkube version: %s (commit %s, built %s by %s)\n", build.Version, build.Commit, build.Date, build.BuiltBy)
}
