package api

import "encoding/json"

// TextRequest is the payload of every POST /api/* endpoint. Text may hold
// any JSON value; only a JSON string counts as a message.
type TextRequest struct {
	Text json.RawMessage `json:"text"`
}

// ResultResponse is returned by /api/encode, /api/decode and /api/sanitize.
type ResultResponse struct {
	Result string `json:"result"`
}

// ShareResponse is returned by /api/share.
type ShareResponse struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Endpoint paths.
const (
	PathEncode   = "/api/encode"
	PathDecode   = "/api/decode"
	PathSanitize = "/api/sanitize"
	PathShare    = "/api/share"
	PathHealth   = "/healthz"
)
