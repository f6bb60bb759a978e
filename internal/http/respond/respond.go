package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorItem describes one failure in an error response.
type ErrorItem struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Envelope is the response wrapper for operation results: either data or errors is set.
type Envelope struct {
	Data   any         `json:"data,omitempty"`
	Errors []ErrorItem `json:"errors,omitempty"`
}

// Data writes a successful operation result.
func Data(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Data: data})
}

// Error writes a single classified error.
func Error(w http.ResponseWriter, status int, message, code string) {
	JSON(w, status, Envelope{Errors: []ErrorItem{{Message: message, Code: code}}})
}

// JSON writes payload as-is with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
