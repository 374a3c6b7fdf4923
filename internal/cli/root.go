// Package cli provides the command-line interface for palettes.
package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/datafam/palettes/internal/config"
	"github.com/datafam/palettes/internal/version"
)

// rootOptions is the state shared by every command of one invocation.
type rootOptions struct {
	verbose bool
	quiet   bool
	envFile string

	cfg         *config.Config
	configFlags *pflag.FlagSet

	runID  string
	logger hclog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{
		cfg:    config.Default(),
		logger: hclog.NewNullLogger(),
	}
	opts.configFlags = pflag.NewFlagSet("config", pflag.ContinueOnError)
	opts.cfg.RegisterFlags(opts.configFlags)

	rootCmd := &cobra.Command{
		Use:   "palettes",
		Short: "Build Tableau colour palettes from crowdsourced submissions",
		Long: `palettes reads colour palettes submitted through a form, validates and names
every colour, and publishes a Tableau Preferences.tps file together with a
flat table of every colour.

Every flag can also be set with a PALETTES_ environment variable, for example
PALETTES_RESOLVER=expanding, or in a .env file.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: opts.setup,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "file with PALETTES_ variables")
	rootCmd.PersistentFlags().AddFlagSet(opts.configFlags)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newNamesCmd(opts))
	rootCmd.AddCommand(newResolveCmd(opts))

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the environment into unset flags and builds the logger.
func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	if o.verbose && o.quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	lookup, err := config.EnvLookup(o.envFile)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(o.configFlags, lookup); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	o.runID = uuid.NewString()
	o.logger = newLogger(cmd.ErrOrStderr(), o.verbose, o.quiet).With("run", o.runID[:8])
	return nil
}

// changed reports whether a config flag was set on the command line or
// through the environment.
func (o *rootOptions) changed(name string) bool {
	f := o.configFlags.Lookup(name)
	return f != nil && f.Changed
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
