// Package version holds build version information for powercards.
package version

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X github.com/jonathan/powercards/internal/version.Version=1.0.0 -X github.com/jonathan/powercards/internal/version.Commit=abc123"
var (
	// Version is the semantic version of powercards
	Version = "0.1.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Info returns the version, followed by the short commit hash when one is known.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns version, commit and build date on separate lines.
func Full() string {
	return "powercards version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}
