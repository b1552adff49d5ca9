package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Name turns an identifier like EASTERN_JUNGLE into "Eastern Jungle".
func Name(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(id), "_", " "))
}
