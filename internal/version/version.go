package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/vendorcp/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/vendorcp/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/vendorcp/internal/version.Date={{.Date}}
)

// String renders the version block printed by `vendorcp version`.
func String() string {
	return fmt.Sprintf("vendorcp version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
