package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/util"
)

// DefaultWrapWidth is the column width of wrapped colour names.
const DefaultWrapWidth = 16

// NamedColourRow is one row of the master colour list.
type NamedColourRow struct {
	// Row is the 1-based spreadsheet row number.
	Row  int
	ID   string
	Hex  string
	Name string
}

// NameSheet reads the master colour list and writes resolved names back.
type NameSheet interface {
	NamedColours(ctx context.Context) ([]NamedColourRow, error)
	WriteName(ctx context.Context, row int, name, wrapped string) error
}

// FillStats summarises a NameFiller run.
type FillStats struct {
	Named   int
	Kept    int
	Invalid int
}

// NameFiller fills in missing colour names on the master colour list.
type NameFiller struct {
	sheet     NameSheet
	resolver  colour.Resolver
	overwrite bool
	wrapWidth int
	logger    hclog.Logger
}

// NameFillerOptions configures a NameFiller.
type NameFillerOptions struct {
	// Overwrite renames rows that already have a name.
	Overwrite bool

	// WrapWidth is the width of the wrapped name. Zero means DefaultWrapWidth.
	WrapWidth int

	Logger hclog.Logger
}

// NewNameFiller creates a NameFiller.
func NewNameFiller(sheet NameSheet, resolver colour.Resolver, opts NameFillerOptions) *NameFiller {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	width := opts.WrapWidth
	if width <= 0 {
		width = DefaultWrapWidth
	}
	return &NameFiller{
		sheet:     sheet,
		resolver:  resolver,
		overwrite: opts.Overwrite,
		wrapWidth: width,
		logger:    logger,
	}
}

// Fill resolves and writes names for every row that needs one.
func (f *NameFiller) Fill(ctx context.Context) (FillStats, error) {
	var stats FillStats

	rows, err := f.sheet.NamedColours(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to read colour list: %w", err)
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if row.Name != "" && !f.overwrite {
			f.logger.Debug("name already populated", "id", row.ID, "hex", row.Hex)
			stats.Kept++
			continue
		}

		rgb, err := colour.ParseHex(colour.NormaliseHex(row.Hex))
		if err != nil {
			f.logger.Warn("skipping invalid colour", "id", row.ID, "hex", row.Hex)
			stats.Invalid++
			continue
		}

		f.logger.Info("processing colour", "id", row.ID, "hex", row.Hex)
		name := f.resolver.Resolve(ctx, rgb)
		if err := f.sheet.WriteName(ctx, row.Row, name, WrapName(name, f.wrapWidth)); err != nil {
			return stats, fmt.Errorf("failed to write name for colour %s: %w", row.ID, err)
		}
		stats.Named++
	}

	f.logger.Info("wrote colour names", "named", stats.Named, "kept", stats.Kept, "invalid", stats.Invalid)
	return stats, nil
}

// WrapName wraps a colour name for display in a fixed-width cell. A name
// that fits on one line gets a trailing newline so every cell spans at least
// two lines.
func WrapName(name string, width int) string {
	wrapped := util.FillText(name, width)
	if wrapped == name {
		wrapped += "\n"
	}
	return wrapped
}
