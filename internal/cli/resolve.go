package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/palette"
)

func newResolveCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <hex>...",
		Short: "Name one or more colours",
		Long: `Name colours with the configured resolver and print them with their RGB
values and the rounded colour used in the detail table.

Examples:
  palettes resolve ff0000 "#1e90ff" 0a1
  palettes resolve --resolver expanding 5d8aa8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, root, args)
		},
	}
}

func runResolve(cmd *cobra.Command, root *rootOptions, args []string) error {
	if err := root.cfg.ValidateResolver(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	resolver, err := newComponents(root.cfg, root.runID, root.logger).resolver(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	swatches := isTerminal(out)

	headers := []string{"Hex", "RGB", "Rounded", "Name"}
	if swatches {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)

	var invalid []string
	for _, arg := range args {
		hex := colour.NormaliseHex(arg)
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			invalid = append(invalid, arg)
			continue
		}

		rounded := rgb.Round(palette.RoundStep)
		row := []string{hex, rgb.String(), rounded.Hex(), resolver.Resolve(cmd.Context(), rgb)}
		if swatches {
			row = append([]string{colour.Swatch(rgb, 4)}, row...)
		}
		table.AddRow(row)
	}

	fmt.Fprint(out, table.Render())

	if len(invalid) > 0 {
		return fmt.Errorf("invalid hex colour code(s): %s", strings.Join(invalid, ", "))
	}
	return nil
}
