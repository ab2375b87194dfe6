package buildinfo

import "fmt"

// Set with -ldflags "-X pcqmdeck/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("pcqm-deck %s (commit=%s, date=%s)", Version, Commit, Date)
}
