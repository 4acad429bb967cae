// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/dragsort/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/dragsort/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/dragsort/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/dragsort
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns the version, with the commit for development builds.
func Short() string {
	if Version == "dev" && Commit != "none" {
		return fmt.Sprintf("dev (%s)", Commit)
	}
	return Version
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Short(), Commit, Date)
}
