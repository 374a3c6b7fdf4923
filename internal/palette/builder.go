package palette

import (
	"context"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/datafam/palettes/internal/colour"
)

// RoundStep is the channel granularity of ColorEntry.Rounded.
const RoundStep = 5

// Builder parses rows into palettes.
type Builder struct {
	resolver colour.Resolver
	logger   hclog.Logger
}

// NewBuilder creates a Builder that names colours with resolver.
func NewBuilder(resolver colour.Resolver, logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{resolver: resolver, logger: logger}
}

// Build parses row into a palette. The palette's unique name is chosen
// against used and then added to it. Invalid colour tokens are left out of
// the palette and returned as ValidationErrors; a row without any valid
// colour still yields an empty palette. The only error is ErrUniquifyOverflow.
func (b *Builder) Build(ctx context.Context, row Row, used NameSet) (*Palette, []ValidationError, error) {
	name, err := Uniquify(DisplayName(row), used)
	if err != nil {
		return nil, nil, err
	}
	used.Add(name)

	p := &Palette{
		Submitter:  row.Submitter,
		Name:       row.Name,
		UniqueName: name,
		Kind:       ParseKind(row.Type),
	}

	var invalid []ValidationError
	for _, token := range strings.Split(row.Colors, ",") {
		hex := colour.NormaliseHex(token)
		if !colour.IsValidHex(hex) {
			invalid = append(invalid, ValidationError{Palette: name, Token: hex})
			continue
		}

		rgb, err := colour.ParseHex(hex)
		if err != nil {
			// Unreachable for validated input; treated like any invalid token.
			invalid = append(invalid, ValidationError{Palette: name, Token: hex})
			continue
		}

		p.Colors = append(p.Colors, ColorEntry{
			Hex:     hex,
			RGB:     rgb,
			Rounded: rgb.Round(RoundStep),
			Name:    b.resolver.Resolve(ctx, rgb),
		})
	}

	b.logger.Trace("built palette", "palette", name, "kind", p.Kind, "colours", len(p.Colors), "invalid", len(invalid))
	return p, invalid, nil
}
