package version

import "fmt"

// Build-time variables (set via ldflags)
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func Get() string {
	return Version
}

// Full returns the version plus commit and build date when known.
func Full() string {
	out := Version
	if Commit != "unknown" {
		out += "+" + Commit
	}
	if Date != "unknown" {
		out = fmt.Sprintf("%s (%s)", out, Date)
	}
	return out
}
