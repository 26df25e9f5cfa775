package haplotype

import (
	"context"
	"errors"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/acesnik/ProteoformDatabaseEngine-1/internal/genemodel"
)

// Pair couples a derived transcript with its translated proteoform.
type Pair struct {
	Transcript *genemodel.Transcript
	Protein    *Protein
}

// ExpandAll expands and translates every transcript in the model across a
// worker pool. Output order follows model transcript order regardless of
// worker scheduling. Transcripts with structural inconsistencies are
// logged and skipped rather than failing the run.
func (e *Expander) ExpandAll(ctx context.Context, model *genemodel.Model, workers int) ([]Pair, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ts := model.Transcripts()
	results := make([][]Pair, len(ts))

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range ts {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				t := ts[i]
				derived, err := e.ApplyVariants(t)
				if err != nil {
					var invErr *genemodel.InvariantError
					if errors.As(err, &invErr) {
						e.logger.Warn("skipping inconsistent transcript",
							zap.String("transcript", t.Accession()),
							zap.Error(invErr))
						continue
					}
					return err
				}

				var pairs []Pair
				for _, d := range derived {
					if p := e.Translate(d); p != nil {
						pairs = append(pairs, Pair{Transcript: d, Protein: p})
					}
				}
				results[i] = pairs
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var flat []Pair
	for _, pairs := range results {
		flat = append(flat, pairs...)
	}
	return flat, nil
}
