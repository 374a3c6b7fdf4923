package colour

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// NamedColour is a single entry of a NameTable.
type NamedColour struct {
	Hex  string
	RGB  RGB
	Name string
}

// NameTable maps canonical hex colours to human names. It is read-only once
// built and iterates in ascending hex order, so nearest-match ties always
// resolve to the same entry.
type NameTable struct {
	entries []NamedColour
	byHex   map[string]int
}

// NewNameTable builds a table from the given entries. Entries are keyed by
// their RGB; when several names share a colour the alphabetically first name
// is kept.
func NewNameTable(entries []NamedColour) *NameTable {
	byHex := make(map[string]NamedColour, len(entries))
	for _, e := range entries {
		e.Hex = e.RGB.Hex()
		if prev, ok := byHex[e.Hex]; ok && prev.Name <= e.Name {
			continue
		}
		byHex[e.Hex] = e
	}

	sorted := make([]NamedColour, 0, len(byHex))
	for _, e := range byHex {
		sorted = append(sorted, e)
	}
	slices.SortFunc(sorted, func(a, b NamedColour) int {
		return strings.Compare(a.Hex, b.Hex)
	})

	t := &NameTable{
		entries: sorted,
		byHex:   make(map[string]int, len(sorted)),
	}
	for i, e := range sorted {
		t.byHex[e.Hex] = i
	}
	return t
}

var (
	cssOnce  sync.Once
	cssTable *NameTable
)

// CSSNames returns the CSS3 / SVG 1.1 named colour table.
func CSSNames() *NameTable {
	cssOnce.Do(func() {
		entries := make([]NamedColour, 0, len(colornames.Names))
		for _, name := range colornames.Names {
			entries = append(entries, NamedColour{
				RGB:  ToRGB(colornames.Map[name]),
				Name: name,
			})
		}
		cssTable = NewNameTable(entries)
	})
	return cssTable
}

// Len returns the number of distinct colours in the table.
func (t *NameTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table in iteration order.
func (t *NameTable) Entries() []NamedColour {
	return slices.Clone(t.entries)
}

// Lookup returns the name of a colour present verbatim in the table.
func (t *NameTable) Lookup(rgb RGB) (string, bool) {
	i, ok := t.byHex[rgb.Hex()]
	if !ok {
		return "", false
	}
	return t.entries[i].Name, true
}

// Nearest returns the entry with the smallest squared RGB distance to rgb.
// The first minimum in iteration order wins. It returns false for an empty
// table.
func (t *NameTable) Nearest(rgb RGB) (NamedColour, bool) {
	if len(t.entries) == 0 {
		return NamedColour{}, false
	}
	best := 0
	bestDist := rgb.DistanceSq(t.entries[0].RGB)
	for i := 1; i < len(t.entries); i++ {
		if d := rgb.DistanceSq(t.entries[i].RGB); d < bestDist {
			best, bestDist = i, d
		}
	}
	return t.entries[best], true
}
