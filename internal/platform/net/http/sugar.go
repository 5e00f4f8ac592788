package http

import (
	"net/http"

	"engagegov/internal/platform/net/http/bind"
)

// Get mounts a return-style handler for GET
func Get(r Router, path string, h func(*http.Request) Response) {
	r.Get(path, Handle(h))
}

// GetQuery mounts a GET handler whose query string binds and validates into T
// binding failures answer 400 before h runs
func GetQuery[T any](r Router, path string, h func(*http.Request, T) Response) {
	r.Get(path, Handle(func(req *http.Request) Response {
		q, err := bind.Query[T](req)
		if err != nil {
			return Error(err)
		}
		return h(req, q)
	}))
}
