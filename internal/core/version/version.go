// Package version reports build metadata stamped at link time
package version

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service" example:"engagegov-api"`
	Version string `json:"version" example:"v0.3.0"`
	Commit  string `json:"commit"  example:"4f1c2ab"`
	Date    string `json:"date"    example:"2026-10-01"`
}

// Set via -ldflags "-X engagegov/internal/core/version.version=v0.3.0 -X engagegov/internal/core/version.commit=4f1c2ab"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Service is the name the API reports about itself
const Service = "engagegov-api"

// Info returns the build information
func Info() BuildInfo {
	return BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
}

// UserAgent is sent upstream so source operators can identify the client
func UserAgent() string { return Service + "/" + version }
