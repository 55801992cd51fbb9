// Package buildinfo reports which lookbook build is running.
//
// Release builds stamp the values through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/lookbook/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/lookbook/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/lookbook/pkg/buildinfo.Date=$(date -u +%F)"
//
// Binaries built with go install carry no stamp; for those the module version
// and VCS revision embedded by the toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Stamped by the linker. See the package doc.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none" && len(s.Value) >= 7:
			Commit = s.Value[:7]
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// String is the multi-line summary printed by --version.
func String() string {
	return fmt.Sprintf("lookbook %s\ncommit %s, built %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return String() + "\n"
}
