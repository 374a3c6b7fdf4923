package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/pipeline"
)

type namesOptions struct {
	overwrite bool
	wrapWidth int
}

func newNamesCmd(root *rootOptions) *cobra.Command {
	opts := &namesOptions{}

	cmd := &cobra.Command{
		Use:   "names",
		Short: "Fill in missing names on the master colour list",
		Long: `Name every colour of the master colour list ("All Colors" sheet) that has no
name yet. The name goes to column F and a copy wrapped for display to column G.

Unless --resolver is given, names come from the remote naming service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNames(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "rename colours that already have a name")
	cmd.Flags().IntVar(&opts.wrapWidth, "wrap-width", pipeline.DefaultWrapWidth, "width of the wrapped name")

	return cmd
}

func runNames(cmd *cobra.Command, root *rootOptions, opts *namesOptions) error {
	ctx := cmd.Context()
	cfg := root.cfg

	if !root.changed("resolver") {
		cfg.Resolver = string(colour.StrategyRemote)
	}
	if err := cfg.ValidateNames(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c := newComponents(cfg, root.runID, root.logger)
	defer c.Close()

	resolver, err := c.resolver(ctx)
	if err != nil {
		return err
	}
	sheet, err := c.spreadsheet(ctx)
	if err != nil {
		return err
	}

	filler := pipeline.NewNameFiller(sheet, resolver, pipeline.NameFillerOptions{
		Overwrite: opts.overwrite,
		WrapWidth: opts.wrapWidth,
		Logger:    root.logger.Named("names"),
	})
	stats, err := filler.Fill(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "named %d, kept %d, invalid %d\n", stats.Named, stats.Kept, stats.Invalid)
	return nil
}
