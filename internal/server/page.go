package server

import (
	"embed"
	"html/template"
	"unicode/utf8"

	"github.com/dedene/flipboard-cli/internal/board"
	"github.com/dedene/flipboard-cli/internal/sanitize"
)

//go:embed page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "page.html"))

// tile is one character span of the rendered board.
type tile struct {
	Char    string
	DelayMS int64
}

// pageData feeds page.html. Message and Tiles only ever hold sanitized text.
type pageData struct {
	Composer    bool
	Message     string
	Tiles       []tile
	Placeholder string
	Draft       string
	DraftLength int
	MaxLength   int
	Hint        string
	ShareURL    string
}

// boardData fills the board fields from already sanitized text.
func boardData(safe string) pageData {
	data := pageData{Placeholder: board.Placeholder, MaxLength: sanitize.MaxLength}
	if sanitize.IsBlank(safe) {
		return data
	}

	data.Message = safe
	for _, c := range board.Cells(safe) {
		ch := string(c.Char)
		if c.Char == ' ' {
			ch = "\u00a0"
		}

		data.Tiles = append(data.Tiles, tile{Char: ch, DelayMS: c.Delay.Milliseconds()})
	}

	return data
}

// composerData builds the composer page with a live preview of draft.
func composerData(draft string) pageData {
	data := boardData(sanitize.String(draft))
	data.Composer = true
	data.Draft = draft
	data.DraftLength = utf8.RuneCountInString(draft)

	return data
}
