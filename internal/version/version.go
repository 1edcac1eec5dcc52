package version

// Version is the current prettier-master release.
const Version = "1.0.0"

// FullVersion returns the version with its v prefix.
func FullVersion() string {
	return "v" + Version
}
