// Package site serves the embedded documentation pages.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded documentation pages under /docs/.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /docs/", http.StripPrefix("/docs/", http.FileServer(FS())))
}
