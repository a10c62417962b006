// Package codec converts message text to and from the URL-embeddable token
// carried in a share link.
//
// A token is the standard base64 encoding (with padding) of the text's UTF-8
// bytes. Decoding is total: any input that is not a well-formed token yields
// the empty string instead of an error. The codec reproduces whatever was
// encoded, markup included; it is format-safe, not content-safe, so decoded
// text must pass through the sanitizer before it is displayed.
package codec

import (
	"encoding/base64"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dedene/flipboard-cli/internal/message"
)

// tokenPattern is the syntactic shape of a token: base64 alphabet followed by
// at most two padding characters.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// Encode returns the token for text. The empty string encodes to the empty
// string. Invalid UTF-8 byte runs are replaced with U+FFFD first, so every
// token produced here decodes.
func Encode(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToValidUTF8(text, "�")

	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode returns the text carried by in, or "" when in is Invalid or not a
// well-formed token.
func Decode(in message.Input) string {
	token, ok := in.Value()
	if !ok {
		return ""
	}

	return DecodeString(token)
}

// DecodeString returns the text carried by token, or "" when the token is
// malformed: wrong alphabet, bad padding, or bytes that are not UTF-8.
//
// Padding is optional, as with a browser's atob: a token whose length is a
// multiple of four may end in up to two '=' characters, and an unpadded
// token is accepted as long as its length is not 1 mod 4.
func DecodeString(token string) string {
	if token == "" || !tokenPattern.MatchString(token) {
		return ""
	}

	if len(token)%4 == 0 {
		token = strings.TrimSuffix(token, "=")
		token = strings.TrimSuffix(token, "=")
	}

	if strings.Contains(token, "=") || len(token)%4 == 1 {
		return ""
	}

	raw, err := base64.RawStdEncoding.DecodeString(token)
	if err != nil {
		return ""
	}

	if !utf8.Valid(raw) {
		return ""
	}

	return string(raw)
}
