package colour

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultGenAIModel is the Gemini model asked for colour names.
const DefaultGenAIModel = "gemini-2.5-flash"

// Gen AI backends.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// maxGenAINameLength bounds an accepted answer. Longer replies are prose,
// not names.
const maxGenAINameLength = 40

const genAIPrompt = "Give a short, common English name of at most three words for the colour " +
	"with hex code #%s. Reply with the name only."

// ContentGenerator is the subset of *genai.Models used by GenAIResolver.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ ContentGenerator = (*genai.Models)(nil)

// GenAIOptions configures a GenAIResolver.
type GenAIOptions struct {
	// Generator answers the prompts, normally genai.Client.Models.
	Generator ContentGenerator

	// Model is the model name. Empty means DefaultGenAIModel.
	Model string

	// Timeout bounds each request. Zero means no extra deadline.
	Timeout time.Duration

	RequestsPerSecond float64
	Burst             int

	Logger hclog.Logger
}

// GenAIResolver names colours by asking a Gemini model. Failures and
// unusable answers resolve to Unknown.
type GenAIResolver struct {
	generator ContentGenerator
	model     string
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    hclog.Logger
}

// NewGenAIResolver creates a GenAIResolver.
func NewGenAIResolver(opts GenAIOptions) *GenAIResolver {
	model := opts.Model
	if model == "" {
		model = DefaultGenAIModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	r := &GenAIResolver{
		generator: opts.Generator,
		model:     model,
		timeout:   opts.Timeout,
		logger:    logger,
	}
	if opts.RequestsPerSecond > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), max(opts.Burst, 1))
	}
	return r
}

// NewGenAIClient creates a Gen AI client for backend. The Gemini API
// backend needs an API key; Vertex AI uses application default credentials.
func NewGenAIClient(ctx context.Context, backend, apiKey string) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{}

	switch backend {
	case BackendVertexAI:
		clientConfig.Backend = genai.BackendVertexAI
	case BackendGeminiAPI, "":
		clientConfig.Backend = genai.BackendGeminiAPI
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required for the %s backend", BackendGeminiAPI)
		}
		clientConfig.APIKey = apiKey
	default:
		return nil, fmt.Errorf("unknown Gen AI backend %q (valid: %s, %s)", backend, BackendGeminiAPI, BackendVertexAI)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return client, nil
}

// Resolve implements Resolver.
func (r *GenAIResolver) Resolve(ctx context.Context, rgb RGB) string {
	hex := strings.ToUpper(rgb.Hex())

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			r.logger.Debug("rate limiter wait aborted", "hex", hex, "error", err)
			return Unknown
		}
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "text/plain",
	}
	resp, err := r.generator.GenerateContent(ctx, r.model, genai.Text(fmt.Sprintf(genAIPrompt, hex)), config)
	if err != nil {
		r.logger.Debug("gen ai lookup failed", "hex", hex, "error", err)
		return Unknown
	}

	name := cleanGenAIName(responseText(resp))
	if name == "" {
		r.logger.Debug("gen ai answer unusable", "hex", hex)
		return Unknown
	}
	return name
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// cleanGenAIName keeps the first line of an answer without surrounding
// quotes or a trailing full stop.
func cleanGenAIName(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, " \t\"'`*")
	s = strings.TrimRight(s, ".")
	s = strings.TrimSpace(s)
	if len(s) > maxGenAINameLength {
		return ""
	}
	return s
}
