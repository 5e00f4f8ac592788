package swaggerkit

import (
	"net/http"

	phttp "engagegov/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsRoot = "/api/docs"
	specPath = docsRoot + "/doc.json"
)

// Mount serves the Swagger UI under /api/docs and the adjusted spec at /api/docs/doc.json
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/index.html", http.StatusPermanentRedirect)
	})
	r.Get(specPath, serveDocJSON())
	r.Handle(docsRoot+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(specPath),
		httpSwagger.DocExpansion("list"),
	))
}
