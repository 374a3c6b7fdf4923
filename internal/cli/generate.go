package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/palette"
	"github.com/datafam/palettes/internal/pipeline"
)

type generateOptions struct {
	dryRun  bool
	preview bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build and publish the preferences document",
		Long: `Read every submitted palette, validate and name its colours, and publish the
Tableau preferences document and the colour detail table.

Invalid hex codes are reported through the configured notifier and left out
of their palette; they never stop the run.

Examples:
  # Hosted run: Google Sheets in, S3 and the Detail sheet out
  palettes generate

  # Local run from a CSV export
  palettes generate --source csv --input-csv submissions.csv \
    --output file --output-dir out --details csv --detail-csv out/detail.csv

  # Look at the result without publishing anything
  palettes generate --dry-run --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the document instead of publishing")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "print a table of the generated palettes")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	ctx := cmd.Context()
	cfg := root.cfg
	logger := root.logger

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c := newComponents(cfg, root.runID, logger)
	defer c.Close()

	resolver, err := c.resolver(ctx)
	if err != nil {
		return err
	}
	source, err := c.rowSource(ctx)
	if err != nil {
		return err
	}
	notifier, err := c.notifier(ctx, opts.dryRun)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Resolver:    resolver,
		Reserved:    cfg.ReservedRule(),
		Notifier:    notifier,
		DocumentKey: cfg.DocumentKey,
		RunID:       root.runID,
		Logger:      logger.Named("pipeline"),
	}
	if !root.quiet {
		pipeOpts.Progress = newProgress(cmd.ErrOrStderr(), "naming colours")
	}
	if !opts.dryRun {
		if pipeOpts.Document, err = c.documentSink(ctx); err != nil {
			return err
		}
		if pipeOpts.Details, err = c.detailSinks(ctx); err != nil {
			return err
		}
	}

	rows, err := source.Rows(ctx)
	if err != nil {
		return fmt.Errorf("failed to read submissions: %w", err)
	}
	logger.Info("read submissions", "rows", len(rows), "source", cfg.Source)

	p := pipeline.New(pipeOpts)
	result, err := p.Run(ctx, rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.preview {
		fmt.Fprintln(out, renderPalettes(result.Palettes, isTerminal(out)))
	}
	if opts.dryRun {
		_, err := out.Write(result.Document)
		return err
	}

	return p.Publish(ctx, result)
}

// renderPalettes formats palettes as a table, with colour swatches when
// the output is a terminal.
func renderPalettes(palettes []*palette.Palette, swatches bool) string {
	headers := []string{"Palette", "Type", "Colours"}
	if swatches {
		headers = append(headers, "Swatches")
	}

	table := NewTable(headers)
	table.SetColumnMaxWidth(0, 40)
	for _, p := range palettes {
		row := []string{strings.TrimRight(p.UniqueName, " "), p.Kind.String(), strconv.Itoa(p.Len())}
		if swatches {
			row = append(row, paletteSwatches(p))
		}
		table.AddRow(row)
	}
	return table.Render()
}

func paletteSwatches(p *palette.Palette) string {
	var b strings.Builder
	for _, c := range p.Colors {
		b.WriteString(colour.Swatch(c.RGB, 2))
	}
	return b.String()
}
