package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/datafam/palettes/internal/palette"
	"github.com/datafam/palettes/internal/pipeline"
)

// Default sheet titles of the submission spreadsheet.
const (
	DefaultResponsesSheet = "Form Responses 1"
	DefaultDetailSheet    = "Detail"
	DefaultColoursSheet   = "All Colors"
)

// Layout names the sheets of the spreadsheet.
type Layout struct {
	Responses string
	Detail    string
	Colours   string
}

// DefaultLayout returns the standard sheet titles.
func DefaultLayout() Layout {
	return Layout{
		Responses: DefaultResponsesSheet,
		Detail:    DefaultDetailSheet,
		Colours:   DefaultColoursSheet,
	}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.Responses == "" {
		l.Responses = d.Responses
	}
	if l.Detail == "" {
		l.Detail = d.Detail
	}
	if l.Colours == "" {
		l.Colours = d.Colours
	}
	return l
}

// Spreadsheet adapts a ValuesAPI to the pipeline's row source, detail sink
// and colour list interfaces.
type Spreadsheet struct {
	values ValuesAPI
	layout Layout
	logger hclog.Logger
}

var (
	_ pipeline.RowSource  = (*Spreadsheet)(nil)
	_ pipeline.DetailSink = (*Spreadsheet)(nil)
	_ pipeline.NameSheet  = (*Spreadsheet)(nil)
)

// NewSpreadsheet creates a Spreadsheet. Empty layout fields use the defaults.
func NewSpreadsheet(values ValuesAPI, layout Layout, logger hclog.Logger) *Spreadsheet {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Spreadsheet{values: values, layout: layout.withDefaults(), logger: logger}
}

// Rows reads the submissions from columns C to F of the responses sheet,
// skipping the header row. Rows with every cell blank are dropped.
func (s *Spreadsheet) Rows(ctx context.Context) ([]palette.Row, error) {
	values, err := s.values.Get(ctx, sheetRange(s.layout.Responses, "C2:F"))
	if err != nil {
		return nil, err
	}

	rows := make([]palette.Row, 0, len(values))
	for _, v := range values {
		row := palette.Row{
			Submitter: cell(v, 0),
			Type:      cell(v, 1),
			Name:      cell(v, 2),
			Colors:    cell(v, 3),
		}
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}

	s.logger.Debug("read submissions", "sheet", s.layout.Responses, "rows", len(rows))
	return rows, nil
}

func isBlank(r palette.Row) bool {
	return strings.TrimSpace(r.Submitter+r.Type+r.Name+r.Colors) == ""
}

// WriteDetails clears columns A to I of the detail sheet below the header
// and writes rows from row 2.
func (s *Spreadsheet) WriteDetails(ctx context.Context, rows []palette.DetailRow) error {
	if err := s.values.Clear(ctx, sheetRange(s.layout.Detail, "A2:I")); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = r.Values()
	}

	rng := sheetRange(s.layout.Detail, fmt.Sprintf("A2:I%d", len(rows)+1))
	if err := s.values.Update(ctx, rng, values); err != nil {
		return err
	}

	s.logger.Debug("wrote detail rows", "range", rng, "rows", len(rows))
	return nil
}

// NamedColours reads the colour list: id in column C, hex in D and name in F.
func (s *Spreadsheet) NamedColours(ctx context.Context) ([]pipeline.NamedColourRow, error) {
	values, err := s.values.Get(ctx, sheetRange(s.layout.Colours, "C2:F"))
	if err != nil {
		return nil, err
	}

	rows := make([]pipeline.NamedColourRow, 0, len(values))
	for i, v := range values {
		rows = append(rows, pipeline.NamedColourRow{
			Row:  i + 2,
			ID:   cell(v, 0),
			Hex:  cell(v, 1),
			Name: cell(v, 3),
		})
	}
	return rows, nil
}

// WriteName stores name in column F and the wrapped name in column G of row.
func (s *Spreadsheet) WriteName(ctx context.Context, row int, name, wrapped string) error {
	rng := sheetRange(s.layout.Colours, fmt.Sprintf("F%d:G%d", row, row))
	return s.values.Update(ctx, rng, [][]any{{name, wrapped}})
}
