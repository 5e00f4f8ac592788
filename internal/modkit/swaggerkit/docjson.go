// Package swaggerkit provides OpenAPI swagger UI integration for HTTP services
package swaggerkit

import (
	"encoding/json"
	"net/http"

	"engagegov/internal/core/version"
	"engagegov/internal/platform/config"
	docs "engagegov/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator; call it from module init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

const envelopeRef = "#/definitions/http.Envelope"

// serveDocJSON serves the generated spec with the runtime error shapes and build version filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		if info, ok := spec["info"].(map[string]any); ok {
			if v := version.Info().Version; v != "dev" {
				info["version"] = v
			}
			if sfx := config.New().Prefix("API_").MayString("DOCS_TITLE_SUFFIX", ""); sfx != "" {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + sfx
				}
			}
		}

		eachOperation(spec, func(op map[string]any) {
			addResponse(op, "500", "Internal Server Error", map[string]any{
				"status_code": 500,
				"status":      "Internal Server Error",
				"code":        "panic",
				"error":       "panic recovered",
				"request_id":  "engagegov/abc-000001",
			})
			if hasQueryParams(op) {
				addResponse(op, "400", "Bad Request", map[string]any{
					"status_code": 400,
					"status":      "Bad Request",
					"code":        "validation",
					"error":       "year must be at least 1900",
					"field":       "year",
					"request_id":  "engagegov/abc-000002",
				})
			}
		})

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

func eachOperation(spec map[string]any, fn func(op map[string]any)) {
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			if op, ok := opAny.(map[string]any); ok {
				fn(op)
			}
		}
	}
}

// addResponse sets a swagger 2 response unless the annotations already declared one
func addResponse(op map[string]any, code, desc string, example map[string]any) {
	resps, ok := op["responses"].(map[string]any)
	if !ok {
		resps = map[string]any{}
		op["responses"] = resps
	}
	if _, exists := resps[code]; exists {
		return
	}
	resps[code] = map[string]any{
		"description": desc,
		"schema":      map[string]any{"$ref": envelopeRef},
		"examples":    map[string]any{"application/json": example},
	}
}

func hasQueryParams(op map[string]any) bool {
	params, _ := op["parameters"].([]any)
	for _, p := range params {
		if m, ok := p.(map[string]any); ok && m["in"] == "query" {
			return true
		}
	}
	return false
}
