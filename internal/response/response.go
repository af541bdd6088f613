// Package response provides shared JSON response helpers for HTTP handlers.
package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the standard error response shape. Error carries a stable
// machine-readable code; Message is human-readable.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes an error response with the given status, code, and message.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Success: false, Error: code, Message: message})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusBadRequest, code, message)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusNotFound, code, message)
}

// PayloadTooLarge writes a 413 response.
func PayloadTooLarge(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusRequestEntityTooLarge, code, message)
}

// BadGateway writes a 502 response.
func BadGateway(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusBadGateway, code, message)
}

// InternalError writes a 500 response.
func InternalError(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusInternalServerError, code, message)
}
