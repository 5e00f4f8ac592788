package httpkit

import (
	"net/http"

	phttp "engagegov/internal/platform/net/http"
)

// Get mounts a return-style GET handler
func Get(r Router, path string, h func(*http.Request) Response) { phttp.Get(r, path, h) }

// GetQuery mounts a GET handler with its query string bound into T
func GetQuery[T any](r Router, path string, h func(*http.Request, T) Response) {
	phttp.GetQuery(r, path, h)
}
