// Package share composes share links on the producing side and runs the
// receive pipeline (token -> decode -> sanitize) on the consuming side.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dedene/flipboard-cli/internal/codec"
	"github.com/dedene/flipboard-cli/internal/message"
	"github.com/dedene/flipboard-cli/internal/sanitize"
)

// Param is the query parameter that carries the token.
const Param = "m"

// DefaultOrigin is used when no origin is configured.
const DefaultOrigin = "http://localhost:8080"

var (
	// ErrBlankMessage is returned when asked to share an empty or
	// whitespace-only message.
	ErrBlankMessage = errors.New("message is blank")

	// ErrInvalidOrigin is returned when the origin is not an absolute
	// http(s) URL.
	ErrInvalidOrigin = errors.New("invalid origin")
)

// BuildURL returns "<origin>/?m=<token>" for text. The token is embedded as
// is; the base64 alphabet needs no escaping in a query value.
func BuildURL(origin, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrBlankMessage
	}

	origin, err := NormalizeOrigin(origin)
	if err != nil {
		return "", err
	}

	return origin + "/?" + Param + "=" + codec.Encode(text), nil
}

// NormalizeOrigin validates origin and strips trailing slashes. An empty
// origin yields DefaultOrigin.
func NormalizeOrigin(origin string) (string, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return DefaultOrigin, nil
	}

	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidOrigin, origin, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q (expected http or https URL)", ErrInvalidOrigin, origin)
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: %q (must not carry a query or fragment)", ErrInvalidOrigin, origin)
	}

	return strings.TrimRight(origin, "/"), nil
}

// TokenFromURL extracts the token from a share URL, a bare query string
// ("m=..."), or a bare token. A URL or query without the parameter is
// Invalid.
//
// Form decoding turns '+' into a space; spaces are not in the token
// alphabet, so they are turned back into '+'.
func TokenFromURL(raw string) message.Input {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return message.Invalid
	}

	query, ok := queryPart(raw)
	if !ok {
		return message.Text(raw)
	}

	// ParseQuery keeps going past malformed pairs; the error only reports
	// the first one.
	values, _ := url.ParseQuery(query)
	if !values.Has(Param) {
		return message.Invalid
	}

	return message.Text(strings.ReplaceAll(values.Get(Param), " ", "+"))
}

func queryPart(raw string) (string, bool) {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}

	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[i+1:], true
	}

	if strings.Contains(raw, "://") {
		return "", true
	}

	if strings.HasPrefix(raw, Param+"=") || strings.Contains(raw, "&") {
		return raw, true
	}

	return "", false
}

// Receive decodes and sanitizes in. ok is false when nothing displayable
// remains, in which case the caller falls back to the composer.
func Receive(in message.Input) (string, bool) {
	safe := sanitize.String(codec.Decode(in))

	return safe, !sanitize.IsBlank(safe)
}

// ReceiveURL runs Receive on the token carried by raw.
func ReceiveURL(raw string) (string, bool) {
	return Receive(TokenFromURL(raw))
}

// Preview returns the live-preview form of text being composed. It is never
// persisted.
func Preview(text string) string {
	return sanitize.String(text)
}
