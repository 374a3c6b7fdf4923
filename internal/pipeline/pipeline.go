package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/palette"
)

// Options configures a Pipeline.
type Options struct {
	// Resolver names colours. Nil means the local CSS table.
	Resolver colour.Resolver

	// Reserved filters the master list row before building.
	Reserved palette.ReservedRule

	// Notifier receives one alert per invalid colour token. Optional.
	Notifier Notifier

	// Document receives the rendered document on Publish. Optional.
	Document DocumentSink

	// DocumentKey names the document in the sink. Defaults to palette.DefaultDocumentName.
	DocumentKey string

	// Details receive the detail rows on Publish.
	Details []DetailSink

	// Progress is called after each input row. Optional.
	Progress func(done, total int)

	// RunID labels the run in logs and storage metadata. Generated if empty.
	RunID string

	Logger hclog.Logger
}

// RunResult is everything one run produced.
type RunResult struct {
	RunID    string
	Palettes []*palette.Palette
	Document []byte
	Details  []palette.DetailRow
	Invalid  []palette.ValidationError
	// Skipped counts rows matched by the reserved rule.
	Skipped int
}

// Pipeline turns rows into a preferences document and detail rows.
type Pipeline struct {
	builder  *palette.Builder
	reserved palette.ReservedRule
	notifier Notifier
	document DocumentSink
	docKey   string
	details  []DetailSink
	progress func(done, total int)
	runID    string
	logger   hclog.Logger
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = colour.NewTableResolver(nil)
	}
	docKey := opts.DocumentKey
	if docKey == "" {
		docKey = palette.DefaultDocumentName
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	return &Pipeline{
		builder:  palette.NewBuilder(resolver, logger.Named("builder")),
		reserved: opts.Reserved,
		notifier: opts.Notifier,
		document: opts.Document,
		docKey:   docKey,
		details:  opts.Details,
		progress: opts.Progress,
		runID:    runID,
		logger:   logger,
	}
}

// RunID returns the identifier of this pipeline's run.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run processes rows in order and returns the complete result. Invalid
// colour tokens are reported and skipped; they never stop the run.
func (p *Pipeline) Run(ctx context.Context, rows []palette.Row) (*RunResult, error) {
	result := &RunResult{RunID: p.runID}
	used := palette.NewNameSet()

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if p.reserved.Matches(row) {
			p.logger.Debug("skipping reserved row", "row", i+1, "submitter", row.Submitter, "palette", row.Name)
			result.Skipped++
			p.reportProgress(i+1, len(rows))
			continue
		}

		pal, invalid, err := p.builder.Build(ctx, row, used)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		for _, v := range invalid {
			p.logger.Warn(v.Error())
			if p.notifier != nil {
				p.notifier.Notify(ctx, palette.InvalidHexSubject, v.Error())
			}
		}

		result.Palettes = append(result.Palettes, pal)
		result.Invalid = append(result.Invalid, invalid...)
		p.reportProgress(i+1, len(rows))
	}

	result.Details = palette.DetailRows(result.Palettes)
	result.Document = palette.Document(result.Palettes)

	p.logger.Info("run complete",
		"rows", len(rows),
		"palettes", len(result.Palettes),
		"colours", len(result.Details),
		"invalid", len(result.Invalid),
		"skipped", result.Skipped)

	return result, nil
}

func (p *Pipeline) reportProgress(done, total int) {
	if p.progress != nil {
		p.progress(done, total)
	}
}

// Publish writes the document and detail rows to the configured sinks.
// The document is written first; detail sinks are attempted only if it
// succeeded.
func (p *Pipeline) Publish(ctx context.Context, result *RunResult) error {
	if p.document != nil {
		if err := p.document.PutDocument(ctx, p.docKey, result.Document); err != nil {
			return fmt.Errorf("failed to publish preferences document: %w", err)
		}
		p.logger.Info("wrote preferences document", "key", p.docKey, "bytes", len(result.Document))
	}

	for _, sink := range p.details {
		if err := sink.WriteDetails(ctx, result.Details); err != nil {
			return fmt.Errorf("failed to publish colour details: %w", err)
		}
	}
	if len(p.details) > 0 {
		p.logger.Info("wrote colour details", "rows", len(result.Details), "sinks", len(p.details))
	}

	return nil
}
