package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform failure envelope. The message stays generic
// on credential and token failures so the wire never discloses which check
// failed.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
	Status    int    `json:"status"`
}

// WriteJSON writes a JSON response with the given status code. Token
// responses must not be cached, so Cache-Control is set unconditionally.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform failure envelope.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: errorCode,
		Status:    status,
	})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
