// Package actions hands a share link to the desktop: clipboard copy and
// browser open.
package actions

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// ErrClipboardUnsupported indicates the platform has no clipboard support.
var ErrClipboardUnsupported = errors.New("clipboard not supported on this platform")

// ErrClipboardEmpty is returned by PasteFromClipboard when there is nothing
// to read.
var ErrClipboardEmpty = errors.New("clipboard is empty")

// ClipboardWrite is a function variable for clipboard writes (swappable in tests).
var ClipboardWrite = clipboard.WriteAll

// ClipboardRead is a function variable for clipboard reads (swappable in tests).
var ClipboardRead = clipboard.ReadAll

// ClipboardUnsupported mirrors clipboard.Unsupported (swappable in tests).
var ClipboardUnsupported = clipboard.Unsupported

// BrowserOpen is a function variable for opening URLs (swappable in tests).
var BrowserOpen = browser.OpenURL

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error {
	if ClipboardUnsupported {
		return ErrClipboardUnsupported
	}

	return ClipboardWrite(text)
}

// PasteFromClipboard returns the trimmed clipboard contents, typically a
// share link someone sent.
func PasteFromClipboard() (string, error) {
	if ClipboardUnsupported {
		return "", ErrClipboardUnsupported
	}

	text, err := ClipboardRead()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrClipboardEmpty
	}

	return text, nil
}

// OpenInBrowser opens the given URL in the default browser.
func OpenInBrowser(rawURL string) error {
	return BrowserOpen(rawURL)
}

// Options selects what Deliver does with a link.
type Options struct {
	Copy bool
	Open bool
}

// Result reports which deliveries succeeded.
type Result struct {
	Copied bool
	Opened bool
}

// Deliver copies and/or opens link. Failures are logged and reported via
// the returned error but do not stop the other action.
func Deliver(link string, opts Options) (Result, error) {
	var (
		res  Result
		errs []error
	)

	if opts.Copy {
		if err := CopyToClipboard(link); err != nil {
			slog.Warn("clipboard copy failed", "error", err)
			errs = append(errs, fmt.Errorf("copy: %w", err))
		} else {
			res.Copied = true
		}
	}

	if opts.Open {
		if err := OpenInBrowser(link); err != nil {
			slog.Warn("browser open failed", "error", err)
			errs = append(errs, fmt.Errorf("open: %w", err))
		} else {
			res.Opened = true
		}
	}

	return res, errors.Join(errs...)
}
