package colour

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// DefaultExpandStep is how far the expanding search reaches along each channel.
const DefaultExpandStep = 5

// ExpandingResolver widens an exact-match query into a cube of neighbouring
// colours. Offsets run from 0 to step inclusive with red outermost and blue
// innermost; channels clamp at 255 and duplicate candidates are skipped.
type ExpandingResolver struct {
	base   Resolver
	step   int
	logger hclog.Logger
}

// NewExpandingResolver wraps base. A step of zero or less uses DefaultExpandStep.
func NewExpandingResolver(base Resolver, step int, logger hclog.Logger) *ExpandingResolver {
	if step <= 0 {
		step = DefaultExpandStep
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExpandingResolver{base: base, step: step, logger: logger}
}

// Resolve implements Resolver.
func (r *ExpandingResolver) Resolve(ctx context.Context, rgb RGB) string {
	if name := r.base.Resolve(ctx, rgb); name != Unknown {
		return name
	}

	probed := map[RGB]struct{}{rgb: {}}
	for dr := 0; dr <= r.step; dr++ {
		for dg := 0; dg <= r.step; dg++ {
			for db := 0; db <= r.step; db++ {
				candidate := rgb.Offset(dr, dg, db)
				if _, seen := probed[candidate]; seen {
					continue
				}
				probed[candidate] = struct{}{}

				if ctx.Err() != nil {
					return Unknown
				}
				if name := r.base.Resolve(ctx, candidate); name != Unknown {
					r.logger.Debug("named via neighbour", "hex", rgb.Hex(), "neighbour", candidate.Hex(), "name", name)
					return name
				}
			}
		}
	}

	return Unknown
}
