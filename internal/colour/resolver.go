package colour

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Unknown is the name assigned when no name can be resolved.
const Unknown = "Unknown"

// Resolver assigns a human readable name to a colour. Implementations never
// fail: a colour that cannot be named resolves to Unknown.
type Resolver interface {
	Resolve(ctx context.Context, rgb RGB) string
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, rgb RGB) string

// Resolve calls f(ctx, rgb).
func (f ResolverFunc) Resolve(ctx context.Context, rgb RGB) string {
	return f(ctx, rgb)
}

// TableResolver names colours from a local NameTable: an exact match if the
// colour is in the table, otherwise the nearest entry.
type TableResolver struct {
	table *NameTable
}

// NewTableResolver creates a resolver over table. A nil table uses CSSNames.
func NewTableResolver(table *NameTable) *TableResolver {
	if table == nil {
		table = CSSNames()
	}
	return &TableResolver{table: table}
}

// Resolve implements Resolver.
func (r *TableResolver) Resolve(_ context.Context, rgb RGB) string {
	if name, ok := r.table.Lookup(rgb); ok {
		return name
	}
	if nearest, ok := r.table.Nearest(rgb); ok {
		return nearest.Name
	}
	return Unknown
}

// Strategy selects how colours are named.
type Strategy string

const (
	// StrategyLocal uses the built-in CSS name table with nearest-match fallback.
	StrategyLocal Strategy = "local"

	// StrategyRemote asks the remote colour naming service.
	StrategyRemote Strategy = "remote"

	// StrategyExpanding asks the remote service and widens the query into a
	// box of neighbouring colours when the exact colour has no name.
	StrategyExpanding Strategy = "expanding"

	// StrategyGenAI asks a Gemini model.
	StrategyGenAI Strategy = "genai"
)

// Strategies lists the supported strategies.
func Strategies() []Strategy {
	return []Strategy{StrategyLocal, StrategyRemote, StrategyExpanding, StrategyGenAI}
}

// ParseStrategy parses a strategy name case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyLocal, StrategyRemote, StrategyExpanding, StrategyGenAI:
		return st, nil
	default:
		return "", fmt.Errorf("unknown resolver strategy %q (valid: local, remote, expanding, genai)", s)
	}
}

// ResolverOptions configures NewResolver.
type ResolverOptions struct {
	Strategy Strategy

	// Table is used by the local strategy. Nil means CSSNames.
	Table *NameTable

	// Remote configures the remote and expanding strategies.
	Remote RemoteOptions

	// GenAI configures the genai strategy. GenAI.Generator is required.
	GenAI GenAIOptions

	// ExpandStep is the per-channel reach of the expanding search.
	// Zero means DefaultExpandStep.
	ExpandStep int

	// DisableCache turns off per-run memoisation of remote answers.
	DisableCache bool

	Logger hclog.Logger
}

// NewResolver builds the resolver selected by opts.Strategy.
func NewResolver(opts ResolverOptions) (Resolver, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if opts.Strategy == StrategyLocal || opts.Strategy == "" {
		return NewTableResolver(opts.Table), nil
	}

	var resolver Resolver
	switch opts.Strategy {
	case StrategyRemote, StrategyExpanding:
		remoteOpts := opts.Remote
		remoteOpts.Logger = logger.Named("remote")
		resolver = NewRemoteResolver(remoteOpts)
	case StrategyGenAI:
		if opts.GenAI.Generator == nil {
			return nil, fmt.Errorf("resolver strategy %q needs a Gen AI client", opts.Strategy)
		}
		genaiOpts := opts.GenAI
		genaiOpts.Logger = logger.Named("genai")
		resolver = NewGenAIResolver(genaiOpts)
	default:
		return nil, fmt.Errorf("unknown resolver strategy %q", opts.Strategy)
	}
	if !opts.DisableCache {
		// Neighbour probes of the expanding search hit the cache too.
		resolver = NewCachingResolver(resolver)
	}
	if opts.Strategy == StrategyExpanding {
		resolver = NewExpandingResolver(resolver, opts.ExpandStep, logger.Named("expanding"))
	}
	return resolver, nil
}
