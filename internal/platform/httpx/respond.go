// Package httpx provides JSON request/response utilities.
package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the envelope for every user-visible failure.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends a {"message": ...} response with the given status code.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// ServerError sends a genericized 500. Internals never reach the client.
func ServerError(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "server error")
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
