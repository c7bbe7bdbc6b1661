// Package version reports the build of the fit binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info describes one build.
type Info struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
}

// String renders "v1.2.3 (abc1234) 2026-02-26T10:00:00Z", with a
// "-dirty" suffix on the commit for builds from a modified tree.
func (i Info) String() string {
	commit := i.Commit
	if i.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s) %s", i.Version, commit, i.Date)
}

var current Info

func init() {
	current = Info{Version: Version, Commit: Commit, Date: Date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		current = fromBuildInfo(current, bi)
	}
}

// Get returns the running build's info.
func Get() Info { return current }

func Full() string { return current.String() }

func Short() string { return current.Version }

// fromBuildInfo fills fields of base still holding their ldflag defaults.
// ldflags values always win.
func fromBuildInfo(base Info, bi *debug.BuildInfo) Info {
	if bi == nil {
		return base
	}
	// "(devel)" means built from an untagged checkout.
	if base.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		base.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if base.Commit == "none" && s.Value != "" {
				rev := s.Value
				if len(rev) > 7 {
					rev = rev[:7]
				}
				base.Commit = rev
			}
		case "vcs.time":
			if base.Date == "unknown" && s.Value != "" {
				base.Date = s.Value
			}
		case "vcs.modified":
			base.Dirty = s.Value == "true"
		}
	}
	return base
}
