package doclink

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SubstituteAll runs [Resolver.Substitute] over texts in parallel and returns
// the results in input order. At most the configured number of workers run
// at once. It stops early with the context's error once ctx, or the
// resolver's base context, is done.
func (r *Resolver) SubstituteAll(ctx context.Context, texts []string) ([]string, error) {
	if ctx == nil {
		ctx = r.context()
	}

	base := r.context()
	out := make([]string, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, text := range texts {
		if gctx.Err() != nil || base.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := base.Err(); err != nil {
				return err
			}

			out[i] = r.Substitute(text)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := base.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
