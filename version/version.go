// Package version reports how the mutigen binary was built and which
// version batch requires constraints are checked against.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const devVersion = "dev"

// Build information. These variables are set at build time via ldflags;
// builds without ldflags fall back to the module and VCS data Go embeds.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = devVersion

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = devVersion
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	// Modified is set when the binary was built from a dirty work tree
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	info := Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildInfo(bi)
	}
	return info
}

// withBuildInfo fills fields ldflags left at their defaults. `go install
// module@v1.2.0` records the module version; a build inside a checkout
// records the revision.
func (i Info) withBuildInfo(bi *debug.BuildInfo) Info {
	if i.Version == devVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.CommitHash == devVersion {
				i.CommitHash = s.Value
			}
		case "vcs.time":
			if i.BuildTime == "unknown" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}
	return i
}

// Semver parses Version. Pseudo-versions of untagged commits parse but are
// reported as not released.
func (i Info) Semver() (*semver.Version, bool) {
	if i.Version == "" || i.Version == devVersion {
		return nil, false
	}
	v, err := semver.NewVersion(i.Version)
	if err != nil || isPseudo(v) {
		return nil, false
	}
	return v, true
}

// pseudo-versions end in a 14 digit timestamp and a 12 character revision,
// e.g. v0.0.0-20240101120000-abcdef123456
func isPseudo(v *semver.Version) bool {
	parts := strings.Split(v.Prerelease(), "-")
	if len(parts) < 2 {
		return false
	}
	ts := parts[len(parts)-2]
	if i := strings.LastIndex(ts, "."); i >= 0 {
		ts = ts[i+1:]
	}
	return len(ts) == 14 && len(parts[len(parts)-1]) == 12
}

// IsDev reports whether this is a development build without a release version
func (i Info) IsDev() bool {
	_, ok := i.Semver()
	return !ok
}

// RequiresVersion is the version batch requires constraints are checked
// against. Development builds return "", which satisfies every constraint.
func (i Info) RequiresVersion() string {
	v, ok := i.Semver()
	if !ok {
		return ""
	}
	return v.String()
}

// String returns a human-readable version string
func (i Info) String() string {
	commit := i.CommitHash
	if i.Modified {
		commit += ", modified"
	}
	if v, ok := i.Semver(); ok {
		return fmt.Sprintf("mutigen %s (commit %s, built %s)", v, commit, i.BuildTime)
	}
	return fmt.Sprintf("mutigen dev (commit %s, built %s)", commit, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
