package handler

import (
	"net/http"

	"github.com/memberwise/memberful-go/internal/version"
	"github.com/memberwise/memberful-go/internal/xhttp"
)

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, map[string]string{
		"status":  "ok",
		"version": version.Get(),
	})
}
