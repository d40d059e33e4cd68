package httpserver

import (
	_ "embed"
	"net/http"
)

// openAPIDocument describes the public routes.
//
//go:embed openapi.json
var openAPIDocument []byte

func (s *HTTPServer) openAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(openAPIDocument); err != nil {
		ctx := r.Context()
		loggerFrom(ctx, s.logger).Error(ctx, "response write error", "error", err)
	}
}
