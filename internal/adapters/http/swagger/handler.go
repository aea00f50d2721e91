// Package swagger serves the API reference.
package swagger

import (
	"context"
	"net/http"

	"github.com/okian/dataatlas/internal/adapters/http/api"
	"github.com/okian/dataatlas/pkg/logger"
)

// redocScript is the ReDoc bundle the docs page loads.
const redocScript = "https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"

// Register attaches the API reference routes to mux. A nil l discards
// method rejections.
// Routes:
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> Embedded OpenAPI document
func Register(_ context.Context, mux *http.ServeMux, l logger.Logger) {
	if mux == nil {
		panic("mux is nil")
	}
	if l == nil {
		l = logger.Nop()
	}
	get := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return api.MetricsMiddleware(api.RequestID(api.RequireMethod(l, h, http.MethodGet, http.MethodHead)), endpoint)
	}

	mux.HandleFunc("/api-docs", get(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	}, "api_docs"))

	mux.HandleFunc("/openapi.yaml", get(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	}, "openapi"))
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>dataatlas API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + redocScript + `"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
