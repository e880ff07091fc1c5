package middleware

import (
	"encoding/json"
	"net/http"

	"six-cities-api/internal/model"
)

// writeEnvelope emits the standard error envelope from inside the middleware
// chain, which runs before the handlers' response helpers are reachable.
func writeEnvelope(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
