package xhttp

import (
	"net/http"
)

const XForwardedFor = "X-Forwarded-For"

const ContentType = "Content-Type"

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	const headerName = "X-Request-ID"
	w.Header().Set(headerName, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	const applicationJSON = "application/json"
	w.Header().Set(ContentType, applicationJSON)
}
