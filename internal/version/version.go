package version

import "fmt"

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string (commit-hash based, no semver)
func String() string {
	return fmt.Sprintf("shipdesk dev (commit: %s, built: %s)", shortCommit(), BuildTime)
}

// UserAgent returns the User-Agent sent with API requests.
func UserAgent() string {
	return "shipdesk/" + shortCommit()
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
