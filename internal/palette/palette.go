// Package palette turns submitted spreadsheet rows into named, classified
// palettes and renders them as a Tableau preferences document and a flat
// detail table.
package palette

import (
	"fmt"
	"strings"

	"github.com/datafam/palettes/internal/colour"
)

// Row is one submission as read from the spreadsheet.
type Row struct {
	Submitter string
	Type      string
	Name      string
	Colors    string
}

// ColorEntry is a validated colour of a palette.
type ColorEntry struct {
	// Hex is the lowercase hex code without '#', as submitted (three or six digits).
	Hex string
	RGB colour.RGB
	// Rounded has every channel rounded to the nearest multiple of RoundStep.
	Rounded colour.RGB
	Name    string
}

// Palette is a named, ordered collection of colours from one row.
type Palette struct {
	// Submitter and Name are the raw spreadsheet values.
	Submitter string
	Name      string
	// UniqueName is the sanitised "<name> by <submitter>" label, unique within a run.
	UniqueName string
	Kind       Kind
	Colors     []ColorEntry
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// InvalidHexSubject is the notification subject for rejected colour tokens.
const InvalidHexSubject = "Invalid Hex Code"

// ValidationError reports a colour token that is not a hex colour.
type ValidationError struct {
	// Palette is the unique display name of the palette holding the token.
	Palette string
	Token   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Invalid hex color code found in palette, '%s'. The hex code is '%s'.", e.Palette, e.Token)
}

// Sanitise makes a submitted label safe to embed in the preferences
// document: double quotes become single quotes and '&' becomes the word
// "and", padded with a space on each side that does not already have one.
func Sanitise(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	var last byte
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			b.WriteByte(s[i])
			last = s[i]
			continue
		}
		if b.Len() > 0 && last != ' ' {
			b.WriteByte(' ')
		}
		b.WriteString("and")
		last = 'd'
		if i+1 < len(s) && s[i+1] != ' ' {
			b.WriteByte(' ')
			last = ' '
		}
	}
	return b.String()
}

// DisplayName builds the sanitised "<palette> by <submitter>" label.
func DisplayName(row Row) string {
	return Sanitise(row.Name) + " by " + Sanitise(row.Submitter)
}
