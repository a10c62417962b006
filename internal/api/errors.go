package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents a non-2xx answer from a flipboard server.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("flipboard server: %s (HTTP %d)", e.Message, e.StatusCode)
}

// checkResponse tries to parse {"error":"..."} from a failed response,
// falling back to status code mapping.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return &Error{StatusCode: resp.StatusCode, Message: body.Error}
	}

	return &Error{StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode)}
}

// statusMessage maps HTTP status codes to human-readable error messages.
func statusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "malformed request"
	case http.StatusNotFound:
		return "not a flipboard server"
	case http.StatusRequestEntityTooLarge:
		return "message too large"
	case http.StatusUnprocessableEntity:
		return "message is blank"
	case http.StatusTooManyRequests:
		return "rate limited, try again later"
	default:
		return fmt.Sprintf("unexpected error (HTTP %d)", code)
	}
}
