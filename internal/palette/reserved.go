package palette

// ReservedRule identifies the reserved "All Colors" master list row. The
// master list is maintained for use inside Tableau only and is never
// published as a palette. A zero rule matches nothing.
type ReservedRule struct {
	Submitter string
	Name      string
}

// DefaultReservedRule is the master list maintained by the palette curator.
var DefaultReservedRule = ReservedRule{
	Submitter: "Ken Flerlage",
	Name:      "All Colors",
}

// Matches reports whether row is the reserved master list.
func (r ReservedRule) Matches(row Row) bool {
	if r.Submitter == "" && r.Name == "" {
		return false
	}
	return row.Submitter == r.Submitter && row.Name == r.Name
}
