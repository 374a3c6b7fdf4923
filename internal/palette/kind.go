package palette

import "strings"

// Kind classifies a palette.
type Kind int

const (
	// KindUnknown is a palette whose type code was not recognised.
	KindUnknown Kind = iota
	// KindCategorical is a palette of unordered, distinct colours.
	KindCategorical
	// KindSequential is an ordered light-to-dark (or reverse) palette.
	KindSequential
	// KindDiverging is an ordered palette with a neutral midpoint.
	KindDiverging
)

// ParseKind classifies a palette from the first three letters of its type
// code, case-insensitively: CAT, SEQ and DIV. Anything else is KindUnknown.
func ParseKind(code string) Kind {
	// Leading spaces are trimmed, so " CAT" is categorical rather than unknown.
	code = strings.TrimSpace(code)
	if len(code) < 3 {
		return KindUnknown
	}
	switch strings.ToUpper(code[:3]) {
	case "CAT":
		return KindCategorical
	case "SEQ":
		return KindSequential
	case "DIV":
		return KindDiverging
	default:
		return KindUnknown
	}
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindCategorical:
		return "categorical"
	case KindSequential:
		return "sequential"
	case KindDiverging:
		return "diverging"
	default:
		return "unknown"
	}
}

// TableauType returns the value of the color-palette type attribute.
// Unclassified palettes return an empty string.
func (k Kind) TableauType() string {
	switch k {
	case KindCategorical:
		return "regular"
	case KindSequential:
		return "ordered-sequential"
	case KindDiverging:
		return "ordered-diverging"
	default:
		return ""
	}
}
