package palette

import (
	"bufio"
	"bytes"
	"io"
)

// DefaultDocumentName is the file name Tableau reads palettes from.
const DefaultDocumentName = "Preferences.tps"

// Layout of the preferences document. The palette line is indented with four
// spaces and a tab, as Tableau users have been downloading it.
const (
	documentHeader = "<?xml version='1.0'?>\n\n<workbook>\n    <preferences>\n"
	documentFooter = "    </preferences>\n</workbook>\n"
	paletteOpen    = "    \t<color-palette name=\""
	paletteType    = "\" type=\""
	paletteOpenEnd = "\">\n"
	colourOpen     = "            <color>#"
	colourClose    = "</color>\n"
	paletteClose   = "        </color-palette>\n"
)

// WriteDocument renders palettes as a Tableau preferences document.
// Palettes without colours are written as empty blocks.
func WriteDocument(w io.Writer, palettes []*Palette) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(documentHeader)
	for _, p := range palettes {
		bw.WriteString(paletteOpen)
		bw.WriteString(p.UniqueName)
		bw.WriteString(paletteType)
		bw.WriteString(p.Kind.TableauType())
		bw.WriteString(paletteOpenEnd)
		for _, c := range p.Colors {
			bw.WriteString(colourOpen)
			bw.WriteString(c.Hex)
			bw.WriteString(colourClose)
		}
		bw.WriteString(paletteClose)
	}
	bw.WriteString(documentFooter)

	return bw.Flush()
}

// Document renders palettes into memory.
func Document(palettes []*Palette) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = WriteDocument(&buf, palettes)
	return buf.Bytes()
}
