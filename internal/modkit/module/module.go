// Package module defines the minimal contract for a modkit module
package module

import phttp "engagegov/internal/platform/net/http"

// Module is what the API host mounts
// kept apart from modkit so a module can export its own ports type without import cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
