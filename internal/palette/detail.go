package palette

import "strconv"

// DetailHeader names the columns of a detail row.
var DetailHeader = []string{
	"Submitter", "Palette", "Color Number", "Hex", "Hex Rounded", "Color Name", "R", "G", "B",
}

// DetailRow is one (palette, colour) pair of the flat detail table.
type DetailRow struct {
	Submitter string
	Palette   string
	// Position is the 1-based index of the colour within its palette.
	Position   int
	Hex        string
	RoundedHex string
	Name       string
	R, G, B    int
}

// DetailRows flattens palettes in palette order, then colour order.
func DetailRows(palettes []*Palette) []DetailRow {
	var rows []DetailRow
	for _, p := range palettes {
		for i, c := range p.Colors {
			rows = append(rows, DetailRow{
				Submitter:  p.Submitter,
				Palette:    p.Name,
				Position:   i + 1,
				Hex:        c.Hex,
				RoundedHex: c.Rounded.Hex(),
				Name:       c.Name,
				R:          int(c.RGB.R),
				G:          int(c.RGB.G),
				B:          int(c.RGB.B),
			})
		}
	}
	return rows
}

// Values returns the row as typed cell values in DetailHeader order.
func (r DetailRow) Values() []any {
	return []any{r.Submitter, r.Palette, r.Position, r.Hex, r.RoundedHex, r.Name, r.R, r.G, r.B}
}

// Strings returns the row as text cells in DetailHeader order.
func (r DetailRow) Strings() []string {
	return []string{
		r.Submitter,
		r.Palette,
		strconv.Itoa(r.Position),
		r.Hex,
		r.RoundedHex,
		r.Name,
		strconv.Itoa(r.R),
		strconv.Itoa(r.G),
		strconv.Itoa(r.B),
	}
}
