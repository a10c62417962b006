package share_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedene/flipboard-cli/internal/codec"
	"github.com/dedene/flipboard-cli/internal/message"
	"github.com/dedene/flipboard-cli/internal/share"
)

func TestBuildURL(t *testing.T) {
	got, err := share.BuildURL("https://flip.example.com/", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "https://flip.example.com/?m="+codec.Encode("Hello"), got)

	got, err = share.BuildURL("", "Hi")
	require.NoError(t, err)
	assert.Equal(t, share.DefaultOrigin+"/?m=SGk=", got)

	got, err = share.BuildURL("http://localhost:3000/board", "Hi")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/board/?m=SGk=", got)
}

func TestBuildURL_Blank(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := share.BuildURL("https://x.test", text)
		assert.ErrorIs(t, err, share.ErrBlankMessage)
	}
}

func TestBuildURL_InvalidOrigin(t *testing.T) {
	for _, origin := range []string{"ftp://x.test", "x.test", "https://", "javascript:alert(1)", "https://x.test/?q=1", "%zz"} {
		t.Run(origin, func(t *testing.T) {
			_, err := share.BuildURL(origin, "Hello")
			assert.ErrorIs(t, err, share.ErrInvalidOrigin)
		})
	}
}

func TestTokenFromURL(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"full url", "https://flip.example.com/?m=SGk=", "SGk=", true},
		{"plus survives form decoding", "https://x.test/?m=8J+MjQ==", "8J+MjQ==", true},
		{"percent encoded", "https://x.test/?m=8J%2BMjQ%3D%3D", "8J+MjQ==", true},
		{"fragment ignored", "https://x.test/?m=SGk=#top", "SGk=", true},
		{"other params", "https://x.test/?utm=1&m=SGk=", "SGk=", true},
		{"bare query", "m=SGk=", "SGk=", true},
		{"bare token", "SGk=", "SGk=", true},
		{"url without param", "https://x.test/", "", false},
		{"query without param", "https://x.test/?q=1", "", false},
		{"empty", "  ", "", false},
		{"empty param", "https://x.test/?m=", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := share.TokenFromURL(tt.raw).Value()
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndToEnd_Hello(t *testing.T) {
	link, err := share.BuildURL("https://x.test", "Hello")
	require.NoError(t, err)

	token := share.TokenFromURL(link)
	assert.Equal(t, "Hello", codec.Decode(token))

	safe, ok := share.Receive(token)
	assert.True(t, ok)
	assert.Equal(t, "Hello", safe)
}

func TestEndToEnd_Script(t *testing.T) {
	input := `Hello<script>alert("xss")</script>`

	link, err := share.BuildURL("https://x.test", input)
	require.NoError(t, err)

	token := share.TokenFromURL(link)
	assert.Equal(t, input, codec.Decode(token), "decode is content-agnostic")

	safe, ok := share.Receive(token)
	assert.True(t, ok)
	assert.Contains(t, safe, "Hello")
	assert.NotContains(t, safe, "script")
	assert.NotContains(t, safe, "alert")
}

func TestEndToEnd_Malformed(t *testing.T) {
	assert.Equal(t, "", codec.Decode(message.Text("!!!invalid!!!")))

	safe, ok := share.ReceiveURL("https://x.test/?m=!!!invalid!!!")
	assert.False(t, ok)
	assert.Empty(t, safe)
}

func TestReceive_BlankAfterSanitize(t *testing.T) {
	safe, ok := share.Receive(message.Text(codec.Encode("<b></b>   🌍")))
	assert.False(t, ok)
	assert.True(t, strings.TrimSpace(safe) == "")

	_, ok = share.Receive(message.Invalid)
	assert.False(t, ok)
}

func TestReceive_EmojiRoundTripThroughURL(t *testing.T) {
	link, err := share.BuildURL("https://x.test", "Hi 🌍 there?")
	require.NoError(t, err)

	safe, ok := share.ReceiveURL(link)
	assert.True(t, ok)
	assert.Equal(t, "Hi  there?", safe)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "Hi there", share.Preview("Hi\nthere"))
	assert.Equal(t, "", share.Preview("<script>x</script>"))
}
