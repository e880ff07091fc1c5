package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"six-cities-api/internal/model"
)

// Timeout caps handler time for one request. The body is prerendered since
// http.TimeoutHandler takes a fixed string.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "REQUEST_TIMEOUT",
			Message: "Request timed out",
		},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
