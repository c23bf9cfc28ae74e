// Package version reports build information for closurec.
//
// Values can be injected at build time:
//
//	-ldflags "-X closurec/internal/version.version=v1.0.0 -X closurec/internal/version.commit=abc123 -X closurec/internal/version.buildTime=2026-01-01T00:00:00Z"
//
// When they are not, the VCS stamp embedded by the Go toolchain is used.
package version

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

//nolint:gochecknoglobals // Required for build-time injection via ldflags.
var (
	version   string
	commit    string
	buildTime string

	readBuildInfo = debug.ReadBuildInfo
)

// ApplicationName is the name of the application displayed in version output.
const ApplicationName = "closurec"

// Default values used when version information is not available.
const (
	DefaultVersion   = "dev"
	DefaultCommit    = "unknown"
	DefaultBuildTime = "unknown"
)

// shortCommitLen is how many characters of a VCS revision are shown.
const shortCommitLen = 12

// Info holds the version of a build.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool
}

// GetVersion returns the version of the running binary. ldflags values win
// over the embedded VCS stamp, which wins over the defaults.
func GetVersion() Info {
	info := Info{Version: version, Commit: commit, BuildTime: buildTime}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = DefaultVersion
	}
	if info.Commit == "" {
		info.Commit = DefaultCommit
	}
	if len(info.Commit) > shortCommitLen {
		info.Commit = info.Commit[:shortCommitLen]
	}
	if info.BuildTime == "" {
		info.BuildTime = DefaultBuildTime
	}
	return info
}

// String returns the one-line form printed by --version.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (commit %s", ApplicationName, i.Version, i.Commit)
	if i.Modified {
		b.WriteString(", modified")
	}
	fmt.Fprintf(&b, ", built %s)", i.BuildTime)
	return b.String()
}

// Write writes the version only when short is set, otherwise one
// "Label: value" line per field.
func (i Info) Write(w io.Writer, short bool) error {
	if short {
		_, err := fmt.Fprintln(w, i.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\nVersion: %s\nCommit: %s\nBuilt: %s\n",
		ApplicationName, i.Version, i.Commit, i.BuildTime)
	return err
}

// SetBuildVars sets the ldflags variables; tests use it to simulate a release build.
func SetBuildVars(ver, com, bt string) {
	version = ver
	commit = com
	buildTime = bt
}
