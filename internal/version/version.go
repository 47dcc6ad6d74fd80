package version

// Name is the service name reported by /api/version.
const Name = "suno-battler"

// These variables are overridden at build time using -ldflags, e.g.
// -X github.com/Razgrits/Suno-Battler/internal/version.Commit=$(git rev-parse HEAD)
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
