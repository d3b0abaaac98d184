package handler

import (
	_ "embed"
	"net/http"
)

var (
	//go:embed static/index.html
	indexPage []byte

	//go:embed static/admin.html
	adminPage []byte
)

func servePage(page []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}
