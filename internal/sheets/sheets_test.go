package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/palette"
	"github.com/datafam/palettes/internal/pipeline"
)

type update struct {
	rng    string
	values [][]any
}

type memoryValues struct {
	ranges  map[string][][]any
	cleared []string
	updates []update
	err     error
}

func (m *memoryValues) Get(_ context.Context, rng string) ([][]any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ranges[rng], nil
}

func (m *memoryValues) Clear(_ context.Context, rng string) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = append(m.cleared, rng)
	return nil
}

func (m *memoryValues) Update(_ context.Context, rng string, values [][]any) error {
	if m.err != nil {
		return m.err
	}
	m.updates = append(m.updates, update{rng: rng, values: values})
	return nil
}

func TestSpreadsheetRows(t *testing.T) {
	values := &memoryValues{ranges: map[string][][]any{
		"'Form Responses 1'!C2:F": {
			{"Ken", "Sequential", "Blues", "deebf7,9ecae1"},
			{},
			{"Ann", "Categorical", "Short"},
			{"  ", "", "", ""},
			{"Bob", "Diverging", "Num", 123456},
		},
	}}

	rows, err := NewSpreadsheet(values, Layout{}, nil).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}

	want := []palette.Row{
		{Submitter: "Ken", Type: "Sequential", Name: "Blues", Colors: "deebf7,9ecae1"},
		{Submitter: "Ann", Type: "Categorical", Name: "Short", Colors: ""},
		{Submitter: "Bob", Type: "Diverging", Name: "Num", Colors: "123456"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Rows() = %+v, want %+v", rows, want)
	}
}

func TestSpreadsheetRowsBlankGapKeepsOrder(t *testing.T) {
	values := &memoryValues{ranges: map[string][][]any{
		"'Form Responses 1'!C2:F": {
			{"Ken", "Sequential", "Blues", "deebf7"},
			{"", "", "", ""},
			{"Ken", "Diverging", "Blues", "3182bd"},
		},
	}}

	rows, err := NewSpreadsheet(values, Layout{}, nil).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	b := palette.NewBuilder(colour.NewTableResolver(nil), nil)
	used := palette.NewNameSet()
	var got []string
	for _, row := range rows {
		p, _, err := b.Build(context.Background(), row, used)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		got = append(got, p.UniqueName+"|"+p.Kind.String())
	}

	want := []string{"Blues by Ken|sequential", "Blues by Ken |diverging"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("palettes = %q, want %q", got, want)
	}
}

func TestSpreadsheetRowsError(t *testing.T) {
	values := &memoryValues{err: errors.New("quota")}
	if _, err := NewSpreadsheet(values, Layout{}, nil).Rows(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestSpreadsheetWriteDetails(t *testing.T) {
	values := &memoryValues{}
	s := NewSpreadsheet(values, Layout{Detail: "Detail Copy"}, nil)

	rows := []palette.DetailRow{
		{Submitter: "Ken", Palette: "Blues", Position: 1, Hex: "deebf7", RoundedHex: "dcebf5", Name: "aliceblue", R: 222, G: 235, B: 247},
		{Submitter: "Ken", Palette: "Blues", Position: 2, Hex: "9ecae1", RoundedHex: "a0c8e1", Name: "lightblue", R: 158, G: 202, B: 225},
	}
	if err := s.WriteDetails(context.Background(), rows); err != nil {
		t.Fatalf("WriteDetails() error = %v", err)
	}

	if !reflect.DeepEqual(values.cleared, []string{"'Detail Copy'!A2:I"}) {
		t.Errorf("cleared = %v", values.cleared)
	}
	if len(values.updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(values.updates))
	}
	u := values.updates[0]
	if u.rng != "'Detail Copy'!A2:I3" {
		t.Errorf("range = %q", u.rng)
	}
	if len(u.values) != 2 || len(u.values[0]) != 9 || u.values[1][2] != 2 {
		t.Errorf("values = %v", u.values)
	}
}

func TestSpreadsheetWriteDetailsEmpty(t *testing.T) {
	values := &memoryValues{}
	if err := NewSpreadsheet(values, Layout{}, nil).WriteDetails(context.Background(), nil); err != nil {
		t.Fatalf("WriteDetails() error = %v", err)
	}
	if len(values.cleared) != 1 || len(values.updates) != 0 {
		t.Errorf("cleared = %v, updates = %v", values.cleared, values.updates)
	}
}

func TestSpreadsheetNames(t *testing.T) {
	values := &memoryValues{ranges: map[string][][]any{
		"'All Colors'!C2:F": {
			{"1", "ff0000", "", "Red"},
			{"2", "00ff00"},
		},
	}}
	s := NewSpreadsheet(values, Layout{}, nil)

	rows, err := s.NamedColours(context.Background())
	if err != nil {
		t.Fatalf("NamedColours() error = %v", err)
	}
	want := []pipeline.NamedColourRow{
		{Row: 2, ID: "1", Hex: "ff0000", Name: "Red"},
		{Row: 3, ID: "2", Hex: "00ff00", Name: ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("NamedColours() = %+v", rows)
	}

	if err := s.WriteName(context.Background(), 3, "Lime", "Lime\n"); err != nil {
		t.Fatalf("WriteName() error = %v", err)
	}
	if len(values.updates) != 1 || values.updates[0].rng != "'All Colors'!F3:G3" {
		t.Fatalf("updates = %+v", values.updates)
	}
	if !reflect.DeepEqual(values.updates[0].values, [][]any{{"Lime", "Lime\n"}}) {
		t.Errorf("values = %v", values.updates[0].values)
	}
}

func TestReadCSV(t *testing.T) {
	input := "Submitter,Type,Name,Colors\n" +
		"A&B,Categorical,\"X\"\"Y\",\"#FF0000, zz0000, 00ff00\"\n" +
		",,,\n" +
		"Ken,Seq,Blues\n"

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	want := []palette.Row{
		{Submitter: "A&B", Type: "Categorical", Name: `X"Y`, Colors: "#FF0000, zz0000, 00ff00"},
		{Submitter: "Ken", Type: "Seq", Name: "Blues"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("ReadCSV() = %+v, want %+v", rows, want)
	}
}

func TestReadCSVHeader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty file", "", false},
		{"wrong column", "submitter,kind,name,colors\n", true},
		{"too few columns", "submitter,type\n", true},
		{"extra columns allowed", "submitter,type,name,colors,timestamp\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadCSV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrCSVHeader) {
				t.Errorf("error %v is not ErrCSVHeader", err)
			}
		})
	}
}

func TestCSVFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "submissions.csv")
	if err := os.WriteFile(in, []byte("submitter,type,name,colors\nKen,Div,RdBu,\"ca0020,0571b0\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	rows, err := NewCSVSource(in).Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Colors != "ca0020,0571b0" {
		t.Fatalf("Rows() = %+v", rows)
	}

	out := filepath.Join(dir, "detail.csv")
	details := []palette.DetailRow{{Submitter: "Ken", Palette: "RdBu", Position: 1, Hex: "ca0020", RoundedHex: "c80020", Name: "crimson", R: 202, G: 0, B: 32}}
	if err := NewCSVDetailSink(out).WriteDetails(context.Background(), details); err != nil {
		t.Fatalf("WriteDetails() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "Submitter,Palette,Color Number,Hex,Hex Rounded,Color Name,R,G,B\n" +
		"Ken,RdBu,1,ca0020,c80020,crimson,202,0,32\n"
	if string(got) != want {
		t.Errorf("detail file = %q, want %q", got, want)
	}

	if _, err := NewCSVSource(filepath.Join(dir, "missing.csv")).Rows(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestGoogleValues(t *testing.T) {
	var requests []string
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"range":          "'Form Responses 1'!C2:F3",
				"majorDimension": "ROWS",
				"values":         [][]any{{"Ken", "Seq", "Blues", "deebf7"}},
			})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
			_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-id"}`)
		case r.Method == http.MethodPut:
			if got := r.URL.Query().Get("valueInputOption"); got != "RAW" {
				t.Errorf("valueInputOption = %q, want RAW", got)
			}
			body, _ = io.ReadAll(r.Body)
			_, _ = io.WriteString(w, `{"updatedRows":1}`)
		default:
			http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	values, err := NewGoogleValues(ctx, "sheet-id",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("NewGoogleValues() error = %v", err)
	}

	got, err := values.Get(ctx, "'Form Responses 1'!C2:F")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 1 || cell(got[0], 2) != "Blues" {
		t.Errorf("Get() = %v", got)
	}

	if err := values.Clear(ctx, "Detail!A2:I"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := values.Update(ctx, "Detail!A2:I2", [][]any{{"Ken", 1}}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !strings.Contains(string(body), `"values":[["Ken",1]]`) {
		t.Errorf("update body = %s", body)
	}

	if len(requests) != 3 {
		t.Fatalf("requests = %v", requests)
	}
	if !strings.HasPrefix(requests[0], "GET /v4/spreadsheets/sheet-id/values/") {
		t.Errorf("unexpected request %q", requests[0])
	}
}

func TestNewGoogleValuesRequiresID(t *testing.T) {
	if _, err := NewGoogleValues(context.Background(), ""); err == nil {
		t.Error("expected error for empty spreadsheet id")
	}
}
