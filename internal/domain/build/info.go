// Package build holds version information stamped in at link time.
package build

import "strings"

const (
	repoURL    = "https://github.com/bnema/dtabridge"
	devVersion = "dev"
)

// Info is filled from -ldflags in cmd/dtabridge.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Dev reports a binary built without release ldflags.
func (i Info) Dev() bool {
	return i.Version == "" || i.Version == devVersion
}

// String renders "v1.2.3 (abc1234)", or "dev" for local builds.
func (i Info) String() string {
	if i.Dev() {
		return devVersion
	}
	v := i.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if i.Commit == "" || i.Commit == "unknown" {
		return v
	}
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return v + " (" + commit + ")"
}

func Contributors() []string {
	return []string{"bnema"}
}

func RepoURL() string {
	return repoURL
}
