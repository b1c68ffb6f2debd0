package version

// Version is set at build time:
// -ldflags "-X github.com/rxtech-lab/argo-zscore/internal/version.Version=1.2.3"
var Version = "dev"

// GetVersion returns the version printed by the commands.
func GetVersion() string {
	return Version
}
