// Package config holds the run configuration. Values come from flags, then
// PALETTES_* environment variables, then a .env file, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/palette"
	"github.com/datafam/palettes/internal/sheets"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "PALETTES_"

// DefaultSpreadsheetID is the crowdsourced palette spreadsheet.
const DefaultSpreadsheetID = "15TgNrC84NVp9XX5UTXDwCidty3YKWlezTdHDL1gA3_w"

// Source kinds.
const (
	SourceSheets = "sheets"
	SourceCSV    = "csv"
)

// Credential kinds.
const (
	CredentialsS3     = "s3"
	CredentialsSecret = "secret"
	CredentialsFile   = "file"
)

// Output kinds.
const (
	OutputS3   = "s3"
	OutputFile = "file"
	OutputNone = "none"
)

// Detail sink kinds.
const (
	DetailSheets   = "sheets"
	DetailCSV      = "csv"
	DetailPostgres = "postgres"
)

// Notifier kinds.
const (
	NotifierSES = "ses"
	NotifierLog = "log"
)

// Config is the complete run configuration.
type Config struct {
	Source        string
	SpreadsheetID string
	InputCSV      string
	Sheets        sheets.Layout

	Credentials       string
	CredentialsBucket string
	CredentialsKey    string
	CredentialsSecret string
	CredentialsFile   string

	Output       string
	OutputBucket string
	OutputPrefix string
	OutputDir    string
	DocumentKey  string
	Archive      bool

	Details     []string
	DetailCSV   string
	DatabaseURL string

	Notifier  string
	Sender    string
	Recipient string

	Resolver              string
	ResolverURL           string
	ResolverTimeout       time.Duration
	ResolverRPS           float64
	ResolverBurst         int
	ExpandStep            int
	AllowInsecureResolver bool
	GenAIModel            string
	GenAIBackend          string

	ReservedSubmitter string
	ReservedPalette   string

	AWSRegion string
}

// Default returns the configuration of the hosted deployment.
func Default() *Config {
	return &Config{
		Source:        SourceSheets,
		SpreadsheetID: DefaultSpreadsheetID,
		Sheets:        sheets.DefaultLayout(),

		Credentials:       CredentialsS3,
		CredentialsBucket: "flerlage-lambda",
		CredentialsKey:    "creds.json",

		Output:       OutputS3,
		OutputBucket: "flerlage-apps",
		OutputDir:    ".",
		DocumentKey:  palette.DefaultDocumentName,

		Details: []string{DetailSheets},

		Notifier: NotifierLog,

		Resolver:        string(colour.StrategyLocal),
		ResolverURL:     colour.DefaultRemoteURL,
		ResolverTimeout: 10 * time.Second,
		ResolverRPS:     5,
		ResolverBurst:   1,
		ExpandStep:      colour.DefaultExpandStep,
		GenAIModel:      colour.DefaultGenAIModel,
		GenAIBackend:    colour.BackendGeminiAPI,

		ReservedSubmitter: palette.DefaultReservedRule.Submitter,
		ReservedPalette:   palette.DefaultReservedRule.Name,

		AWSRegion: "us-east-2",
	}
}

// RegisterFlags binds every setting to a flag on fs.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Source, "source", c.Source, "where submissions are read from (sheets, csv)")
	fs.StringVar(&c.SpreadsheetID, "spreadsheet-id", c.SpreadsheetID, "Google spreadsheet id")
	fs.StringVar(&c.InputCSV, "input-csv", c.InputCSV, "submissions CSV file for --source=csv")
	fs.StringVar(&c.Sheets.Responses, "responses-sheet", c.Sheets.Responses, "sheet holding form responses")
	fs.StringVar(&c.Sheets.Detail, "detail-sheet", c.Sheets.Detail, "sheet receiving colour details")
	fs.StringVar(&c.Sheets.Colours, "colours-sheet", c.Sheets.Colours, "sheet holding the master colour list")

	fs.StringVar(&c.Credentials, "credentials", c.Credentials, "Google credentials location (s3, secret, file)")
	fs.StringVar(&c.CredentialsBucket, "credentials-bucket", c.CredentialsBucket, "S3 bucket holding the credentials")
	fs.StringVar(&c.CredentialsKey, "credentials-key", c.CredentialsKey, "S3 key of the credentials")
	fs.StringVar(&c.CredentialsSecret, "credentials-secret", c.CredentialsSecret, "Secrets Manager id of the credentials")
	fs.StringVar(&c.CredentialsFile, "credentials-file", c.CredentialsFile, "local credentials file")

	fs.StringVar(&c.Output, "output", c.Output, "where the preferences document goes (s3, file, none)")
	fs.StringVar(&c.OutputBucket, "output-bucket", c.OutputBucket, "S3 bucket for the preferences document")
	fs.StringVar(&c.OutputPrefix, "output-prefix", c.OutputPrefix, "S3 key prefix for the preferences document")
	fs.StringVar(&c.OutputDir, "output-dir", c.OutputDir, "directory for --output=file")
	fs.StringVar(&c.DocumentKey, "document-key", c.DocumentKey, "name of the preferences document")
	fs.BoolVar(&c.Archive, "archive", c.Archive, "also store an xz-compressed copy per run")

	fs.StringSliceVar(&c.Details, "details", c.Details, "detail table sinks (sheets, csv, postgres)")
	fs.StringVar(&c.DetailCSV, "detail-csv", c.DetailCSV, "detail CSV file for --details=csv")
	fs.StringVar(&c.DatabaseURL, "database-url", c.DatabaseURL, "Postgres connection string for --details=postgres")

	fs.StringVar(&c.Notifier, "notifier", c.Notifier, "how invalid colours are reported (ses, log)")
	fs.StringVar(&c.Sender, "sender", c.Sender, "notification sender address")
	fs.StringVar(&c.Recipient, "recipient", c.Recipient, "notification recipient address")

	fs.StringVar(&c.Resolver, "resolver", c.Resolver, "colour naming strategy (local, remote, expanding)")
	fs.StringVar(&c.ResolverURL, "resolver-url", c.ResolverURL, "base URL of the colour naming service")
	fs.DurationVar(&c.ResolverTimeout, "resolver-timeout", c.ResolverTimeout, "timeout per naming request")
	fs.Float64Var(&c.ResolverRPS, "resolver-rps", c.ResolverRPS, "naming requests per second (0 for unlimited)")
	fs.IntVar(&c.ResolverBurst, "resolver-burst", c.ResolverBurst, "naming request burst size")
	fs.IntVar(&c.ExpandStep, "expand-step", c.ExpandStep, "per-channel reach of the expanding search")
	fs.BoolVar(&c.AllowInsecureResolver, "allow-insecure-resolver", c.AllowInsecureResolver, "allow http and private resolver URLs")
	fs.StringVar(&c.GenAIModel, "genai-model", c.GenAIModel, "Gemini model for --resolver=genai")
	fs.StringVar(&c.GenAIBackend, "genai-backend", c.GenAIBackend, "Gen AI backend for --resolver=genai (gemini-api, vertex-ai)")

	fs.StringVar(&c.ReservedSubmitter, "reserved-submitter", c.ReservedSubmitter, "submitter of the reserved master list row")
	fs.StringVar(&c.ReservedPalette, "reserved-palette", c.ReservedPalette, "palette name of the reserved master list row")

	fs.StringVar(&c.AWSRegion, "aws-region", c.AWSRegion, "AWS region")
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvKey returns the environment variable for a flag name.
func EnvKey(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// ApplyEnv sets every flag of fs that was not given on the command line from
// its environment variable, parsing it the way the flag would. Flags set
// from the environment are marked as changed.
func ApplyEnv(fs *pflag.FlagSet, lookup LookupFunc) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		key := EnvKey(f.Name)
		value, ok := lookup(key)
		if !ok {
			return
		}

		var err error
		if sv, isSlice := f.Value.(pflag.SliceValue); isSlice {
			err = sv.Replace(splitList(value))
		} else {
			err = f.Value.Set(value)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		f.Changed = true
	})
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnvLookup returns a LookupFunc over the process environment backed by the
// given .env files. Process variables win; missing files are ignored.
func EnvLookup(files ...string) (LookupFunc, error) {
	dotenv := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for k, v := range values {
			if _, seen := dotenv[k]; !seen {
				dotenv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// Strategy returns the parsed resolver strategy.
func (c *Config) Strategy() (colour.Strategy, error) {
	return colour.ParseStrategy(c.Resolver)
}

// ReservedRule returns the configured reserved-row rule.
func (c *Config) ReservedRule() palette.ReservedRule {
	return palette.ReservedRule{Submitter: c.ReservedSubmitter, Name: c.ReservedPalette}
}

// ResolverOptions returns the resolver settings.
func (c *Config) ResolverOptions() colour.ResolverOptions {
	strategy, _ := c.Strategy()
	return colour.ResolverOptions{
		Strategy: strategy,
		Remote: colour.RemoteOptions{
			BaseURL:           c.ResolverURL,
			Timeout:           c.ResolverTimeout,
			RequestsPerSecond: c.ResolverRPS,
			Burst:             c.ResolverBurst,
		},
		GenAI: colour.GenAIOptions{
			Model:             c.GenAIModel,
			Timeout:           c.ResolverTimeout,
			RequestsPerSecond: c.ResolverRPS,
			Burst:             c.ResolverBurst,
		},
		ExpandStep: c.ExpandStep,
	}
}

// NeedsSpreadsheet reports whether any configured component talks to the
// Google spreadsheet.
func (c *Config) NeedsSpreadsheet() bool {
	return c.Source == SourceSheets || c.HasDetail(DetailSheets)
}

// HasDetail reports whether the detail sink kind is configured.
func (c *Config) HasDetail(kind string) bool {
	for _, d := range c.Details {
		if d == kind {
			return true
		}
	}
	return false
}
