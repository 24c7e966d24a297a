package export

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the embed snippet format
type Mode string

const (
	ModeMarkdown Mode = "markdown"
	ModeHTML     Mode = "html"
	ModePlain    Mode = "plain"
)

// Modes lists the export tabs in display order
var Modes = []Mode{ModeMarkdown, ModeHTML, ModePlain}

var ErrUnknownMode = errors.New("unknown export mode")

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Format builds the embed snippet for an absolute render URL
func Format(absoluteURL string, mode Mode) string {
	switch mode {
	case ModeMarkdown:
		return "![Wave divider](" + absoluteURL + ")"
	case ModeHTML:
		return `<img src="` + absoluteURL + `" alt="Wave divider" style="width:100%;display:block;" />`
	default:
		return absoluteURL
	}
}

// AbsoluteURL joins the public origin with a render path. Nothing has been
// rendered while lastRequest is empty, and the result is empty too.
func AbsoluteURL(base, lastRequest string) string {
	if lastRequest == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + lastRequest
}
