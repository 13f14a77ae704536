package httpx

import (
	"net/http"
)

// HTML writes body with a text/html content type.
func HTML(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// TextError writes a short plain-text error message.
func TextError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(message + "\n"))
}

// TextErrorWithRequest is TextError with the request ID appended, for
// failures raised outside a handler.
func TextErrorWithRequest(r *http.Request, w http.ResponseWriter, statusCode int, message string) {
	if requestID := RequestIDFrom(r); requestID != "" {
		message += " (request_id=" + requestID + ")"
	}
	TextError(w, statusCode, message)
}
