package palette

import (
	"errors"
	"fmt"
)

// MaxUniquifyAttempts bounds Uniquify. Reaching it means the run holds an
// implausible number of identically named palettes.
const MaxUniquifyAttempts = 1024

// ErrUniquifyOverflow is returned when no free name was found within
// MaxUniquifyAttempts.
var ErrUniquifyOverflow = errors.New("palette name uniquification overflow")

// NameSet is the set of palette names already produced in a run.
type NameSet map[string]struct{}

// NewNameSet creates an empty NameSet.
func NewNameSet() NameSet {
	return make(NameSet)
}

// Add inserts name.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether name is present.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Uniquify returns desired, or desired followed by as many spaces as needed
// so that the result is not in used. Tableau ignores every palette after the
// first with a given name, and trailing spaces are invisible in its menus.
//
// used is not modified; the caller adds the returned name.
func Uniquify(desired string, used NameSet) (string, error) {
	candidate := desired
	for attempt := 0; attempt < MaxUniquifyAttempts; attempt++ {
		if !used.Contains(candidate) {
			return candidate, nil
		}
		candidate += " "
	}
	return "", fmt.Errorf("%w: %q", ErrUniquifyOverflow, desired)
}
