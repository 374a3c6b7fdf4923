// Package sheets reads palette submissions from, and writes results back to,
// the Google spreadsheet behind the submission form. CSV files stand in for
// the spreadsheet on local runs.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ValuesAPI reads and writes cell ranges in A1 notation.
type ValuesAPI interface {
	Get(ctx context.Context, rng string) ([][]any, error)
	Clear(ctx context.Context, rng string) error
	Update(ctx context.Context, rng string, values [][]any) error
}

// GoogleValues implements ValuesAPI on one spreadsheet through the Sheets API.
type GoogleValues struct {
	service       *gsheets.Service
	spreadsheetID string
}

// NewGoogleValues creates a client for spreadsheetID. Authentication and
// transport come from opts, typically option.WithCredentialsJSON.
func NewGoogleValues(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleValues, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id cannot be empty")
	}

	opts = append([]option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}, opts...)
	service, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleValues{service: service, spreadsheetID: spreadsheetID}, nil
}

// NewGoogleValuesFromJSON creates a client authenticated with a service
// account key.
func NewGoogleValuesFromJSON(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*GoogleValues, error) {
	return NewGoogleValues(ctx, spreadsheetID, option.WithCredentialsJSON(credentialsJSON))
}

// Get implements ValuesAPI.
func (g *GoogleValues) Get(ctx context.Context, rng string) ([][]any, error) {
	resp, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// Clear implements ValuesAPI.
func (g *GoogleValues) Clear(ctx context.Context, rng string) error {
	_, err := g.service.Spreadsheets.Values.Clear(g.spreadsheetID, rng, &gsheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", rng, err)
	}
	return nil
}

// Update implements ValuesAPI. Values are stored as given: hex codes such as
// "000080" must not be parsed into numbers.
func (g *GoogleValues) Update(ctx context.Context, rng string, values [][]any) error {
	_, err := g.service.Spreadsheets.Values.Update(g.spreadsheetID, rng, &gsheets.ValueRange{
		Range:  rng,
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", rng, err)
	}
	return nil
}

// cell returns row[i] as text, or "" when the row is short.
func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}

// sheetRange quotes a sheet title for A1 notation.
func sheetRange(sheet, cells string) string {
	return "'" + sheet + "'!" + cells
}
