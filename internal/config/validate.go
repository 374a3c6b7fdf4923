package config

import (
	"errors"
	"fmt"

	"github.com/datafam/palettes/internal/colour"
	"github.com/datafam/palettes/internal/security"
)

// Validate checks the configuration of a full generate run.
func (c *Config) Validate() error {
	errs := []error{c.ValidateResolver(), c.validateSpreadsheet()}

	switch c.Source {
	case SourceSheets:
	case SourceCSV:
		if c.InputCSV == "" {
			errs = append(errs, errors.New("--input-csv is required with --source=csv"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q (valid: sheets, csv)", c.Source))
	}

	switch c.Output {
	case OutputNone:
	case OutputS3:
		if c.OutputBucket == "" {
			errs = append(errs, errors.New("--output-bucket is required with --output=s3"))
		}
	case OutputFile:
		if c.OutputDir == "" {
			errs = append(errs, errors.New("--output-dir is required with --output=file"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown output %q (valid: s3, file, none)", c.Output))
	}
	if c.Output != OutputNone && c.DocumentKey == "" {
		errs = append(errs, errors.New("--document-key cannot be empty"))
	}

	for _, d := range c.Details {
		switch d {
		case DetailSheets:
		case DetailCSV:
			if c.DetailCSV == "" {
				errs = append(errs, errors.New("--detail-csv is required with --details=csv"))
			}
		case DetailPostgres:
			if c.DatabaseURL == "" {
				errs = append(errs, errors.New("--database-url is required with --details=postgres"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown detail sink %q (valid: sheets, csv, postgres)", d))
		}
	}

	switch c.Notifier {
	case NotifierLog:
	case NotifierSES:
		if c.Sender == "" || c.Recipient == "" {
			errs = append(errs, errors.New("--sender and --recipient are required with --notifier=ses"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown notifier %q (valid: ses, log)", c.Notifier))
	}

	return errors.Join(errs...)
}

// ValidateNames checks the configuration of a colour names run.
func (c *Config) ValidateNames() error {
	errs := []error{c.ValidateResolver()}
	if c.SpreadsheetID == "" {
		errs = append(errs, errors.New("--spreadsheet-id is required"))
	}
	errs = append(errs, c.validateCredentials())
	return errors.Join(errs...)
}

// ValidateResolver checks the resolver settings.
func (c *Config) ValidateResolver() error {
	strategy, err := c.Strategy()
	if err != nil {
		return err
	}

	var errs []error
	switch strategy {
	case colour.StrategyRemote, colour.StrategyExpanding:
		if err := security.ValidateHTTPURL(c.ResolverURL, c.AllowInsecureResolver); err != nil {
			errs = append(errs, fmt.Errorf("invalid --resolver-url: %w", err))
		}
	case colour.StrategyGenAI:
		if c.GenAIModel == "" {
			errs = append(errs, errors.New("--genai-model is required with --resolver=genai"))
		}
		if c.GenAIBackend != colour.BackendGeminiAPI && c.GenAIBackend != colour.BackendVertexAI {
			errs = append(errs, fmt.Errorf("unknown --genai-backend %q (valid: %s, %s)",
				c.GenAIBackend, colour.BackendGeminiAPI, colour.BackendVertexAI))
		}
	}
	if c.ResolverTimeout <= 0 {
		errs = append(errs, errors.New("--resolver-timeout must be positive"))
	}
	if c.ResolverRPS < 0 {
		errs = append(errs, errors.New("--resolver-rps cannot be negative"))
	}
	if c.ResolverBurst < 0 {
		errs = append(errs, errors.New("--resolver-burst cannot be negative"))
	}
	if c.ExpandStep < 0 || c.ExpandStep > 255 {
		errs = append(errs, errors.New("--expand-step must be between 0 and 255"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateSpreadsheet() error {
	if !c.NeedsSpreadsheet() {
		return nil
	}
	if c.SpreadsheetID == "" {
		return errors.New("--spreadsheet-id is required when reading or writing the spreadsheet")
	}
	return c.validateCredentials()
}

func (c *Config) validateCredentials() error {
	switch c.Credentials {
	case CredentialsS3:
		if c.CredentialsBucket == "" || c.CredentialsKey == "" {
			return errors.New("--credentials-bucket and --credentials-key are required with --credentials=s3")
		}
	case CredentialsSecret:
		if c.CredentialsSecret == "" {
			return errors.New("--credentials-secret is required with --credentials=secret")
		}
	case CredentialsFile:
		if c.CredentialsFile == "" {
			return errors.New("--credentials-file is required with --credentials=file")
		}
	default:
		return fmt.Errorf("unknown credentials location %q (valid: s3, secret, file)", c.Credentials)
	}
	return nil
}
