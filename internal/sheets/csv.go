package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/datafam/palettes/internal/palette"
)

// CSVHeader is the required header of a submissions CSV file.
var CSVHeader = []string{"submitter", "type", "name", "colors"}

// ErrCSVHeader is returned when a submissions file has an unexpected header.
var ErrCSVHeader = errors.New("unexpected CSV header")

// CSVSource reads submissions from a CSV file.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSVSource for path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Rows implements pipeline.RowSource.
func (c *CSVSource) Rows(context.Context) ([]palette.Row, error) {
	f, err := os.Open(c.path) // #nosec G304 - path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open submissions: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses submissions with a submitter,type,name,colors header.
// Header names are matched case-insensitively; short records are padded.
func ReadCSV(r io.Reader) ([]palette.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < len(CSVHeader) {
		return nil, fmt.Errorf("%w: %v", ErrCSVHeader, header)
	}
	for i, want := range CSVHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrCSVHeader, i+1, header[i], want)
		}
	}

	var rows []palette.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		fields := make([]any, len(record))
		for i, f := range record {
			fields[i] = f
		}
		row := palette.Row{
			Submitter: cell(fields, 0),
			Type:      cell(fields, 1),
			Name:      cell(fields, 2),
			Colors:    cell(fields, 3),
		}
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// CSVDetailSink writes the detail table to a CSV file, replacing it.
type CSVDetailSink struct {
	path string
}

// NewCSVDetailSink creates a CSVDetailSink for path.
func NewCSVDetailSink(path string) *CSVDetailSink {
	return &CSVDetailSink{path: path}
}

// WriteDetails implements pipeline.DetailSink.
func (c *CSVDetailSink) WriteDetails(_ context.Context, rows []palette.DetailRow) error {
	f, err := os.Create(c.path) // #nosec G304 - path supplied by the operator
	if err != nil {
		return fmt.Errorf("failed to create detail file: %w", err)
	}

	writeErr := WriteCSV(f, rows)
	closeErr := f.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close detail file: %w", closeErr)
	}
	return nil
}

// WriteCSV writes palette.DetailHeader followed by rows.
func WriteCSV(w io.Writer, rows []palette.DetailRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(palette.DetailHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
