package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/hashicorp/go-hclog"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/config"
	"github.com/datafam/palettes/internal/credentials"
	"github.com/datafam/palettes/internal/datastore"
	"github.com/datafam/palettes/internal/notify"
	"github.com/datafam/palettes/internal/pipeline"
	"github.com/datafam/palettes/internal/sheets"
	"github.com/datafam/palettes/internal/storage"
)

// components builds the collaborators selected by the configuration. AWS
// and the spreadsheet are only contacted when a component needs them.
type components struct {
	cfg    *config.Config
	runID  string
	logger hclog.Logger

	awsCfg *aws.Config
	sheet  *sheets.Spreadsheet
	db     *sql.DB
}

func newComponents(cfg *config.Config, runID string, logger hclog.Logger) *components {
	return &components{cfg: cfg, runID: runID, logger: logger}
}

// Close releases open connections.
func (c *components) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *components) aws(ctx context.Context) (aws.Config, error) {
	if c.awsCfg != nil {
		return *c.awsCfg, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	c.awsCfg = &cfg
	return cfg, nil
}

func (c *components) resolver(ctx context.Context) (colour.Resolver, error) {
	opts := c.cfg.ResolverOptions()
	opts.Logger = c.logger.Named("resolver")

	if opts.Strategy == colour.StrategyGenAI {
		client, err := colour.NewGenAIClient(ctx, c.cfg.GenAIBackend, os.Getenv("GOOGLE_API_KEY"))
		if err != nil {
			return nil, err
		}
		opts.GenAI.Generator = client.Models
	}
	return colour.NewResolver(opts)
}

func (c *components) credentialsLoader(ctx context.Context) (credentials.Loader, error) {
	switch c.cfg.Credentials {
	case config.CredentialsFile:
		return credentials.NewFileLoader(c.cfg.CredentialsFile), nil
	case config.CredentialsS3:
		awsCfg, err := c.aws(ctx)
		if err != nil {
			return nil, err
		}
		return credentials.NewS3Loader(s3.NewFromConfig(awsCfg), c.cfg.CredentialsBucket, c.cfg.CredentialsKey), nil
	case config.CredentialsSecret:
		awsCfg, err := c.aws(ctx)
		if err != nil {
			return nil, err
		}
		return credentials.NewSecretLoader(secretsmanager.NewFromConfig(awsCfg), c.cfg.CredentialsSecret), nil
	default:
		return nil, fmt.Errorf("unknown credentials location %q", c.cfg.Credentials)
	}
}

func (c *components) spreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	if c.sheet != nil {
		return c.sheet, nil
	}

	loader, err := c.credentialsLoader(ctx)
	if err != nil {
		return nil, err
	}
	creds, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load Google credentials: %w", err)
	}

	values, err := sheets.NewGoogleValuesFromJSON(ctx, c.cfg.SpreadsheetID, creds)
	if err != nil {
		return nil, err
	}
	c.sheet = sheets.NewSpreadsheet(values, c.cfg.Sheets, c.logger.Named("sheets"))
	return c.sheet, nil
}

func (c *components) rowSource(ctx context.Context) (pipeline.RowSource, error) {
	if c.cfg.Source == config.SourceCSV {
		return sheets.NewCSVSource(c.cfg.InputCSV), nil
	}
	return c.spreadsheet(ctx)
}

// documentSink returns nil when the document is not published.
func (c *components) documentSink(ctx context.Context) (pipeline.DocumentSink, error) {
	var sink storage.Sink
	switch c.cfg.Output {
	case config.OutputNone:
		return nil, nil
	case config.OutputFile:
		sink = storage.NewFileSink(c.cfg.OutputDir, c.logger.Named("storage"))
	case config.OutputS3:
		awsCfg, err := c.aws(ctx)
		if err != nil {
			return nil, err
		}
		s3Sink, err := storage.NewS3Sink(s3.NewFromConfig(awsCfg), storage.S3Options{
			Bucket: c.cfg.OutputBucket,
			Prefix: c.cfg.OutputPrefix,
			RunID:  c.runID,
			Logger: c.logger.Named("storage"),
		})
		if err != nil {
			return nil, err
		}
		sink = s3Sink
	default:
		return nil, fmt.Errorf("unknown output %q", c.cfg.Output)
	}

	if c.cfg.Archive {
		sink = storage.NewArchiveSink(sink, "", c.runID, c.logger.Named("archive"))
	}
	return sink, nil
}

func (c *components) detailSinks(ctx context.Context) ([]pipeline.DetailSink, error) {
	var sinks []pipeline.DetailSink
	for _, kind := range c.cfg.Details {
		switch kind {
		case config.DetailSheets:
			sheet, err := c.spreadsheet(ctx)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, sheet)
		case config.DetailCSV:
			sinks = append(sinks, sheets.NewCSVDetailSink(c.cfg.DetailCSV))
		case config.DetailPostgres:
			db, err := datastore.NewDB(ctx, c.cfg.DatabaseURL)
			if err != nil {
				return nil, err
			}
			c.db = db
			if err := datastore.Migrate(ctx, db, c.logger.Named("migrations")); err != nil {
				return nil, err
			}
			sinks = append(sinks, datastore.NewDetailDatabase(db, c.runID, c.logger.Named("datastore")))
		default:
			return nil, fmt.Errorf("unknown detail sink %q", kind)
		}
	}
	return sinks, nil
}

// notifier returns nil when invalid colours are only logged. A dry run
// never sends email.
func (c *components) notifier(ctx context.Context, dryRun bool) (pipeline.Notifier, error) {
	if c.cfg.Notifier != config.NotifierSES {
		return nil, nil
	}
	if dryRun {
		return notify.NewLogNotifier(c.logger.Named("notify")), nil
	}

	awsCfg, err := c.aws(ctx)
	if err != nil {
		return nil, err
	}
	return notify.NewEmailNotifier(sesv2.NewFromConfig(awsCfg), c.cfg.Sender, c.cfg.Recipient, c.logger.Named("notify"))
}
