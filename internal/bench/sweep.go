package bench

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	sentsplit "github.com/jamesainslie/go-sentsplit"
)

// SweepResult holds aggregate metrics for one maximum segment length.
type SweepResult struct {
	MaxLength int
	Metrics   Metrics
}

// SweepLengths generates maximum lengths from min up to, but not
// including, max with the given step.
func SweepLengths(min, max, step int) []int {
	if step <= 0 {
		return nil
	}
	var lengths []int
	for n := min; n < max; n += step {
		if n >= sentsplit.MinLength {
			lengths = append(lengths, n)
		}
	}
	return lengths
}

// EvaluateCorpus scores every document at cfg.MaxLength and returns the
// aggregate metrics.
func EvaluateCorpus(ctx context.Context, docs []*Document, cfg Config) (Metrics, error) {
	s, err := sentsplit.New(sentsplit.WithMaxLength(cfg.MaxLength))
	if err != nil {
		return Metrics{}, err
	}

	var agg Metrics
	for _, doc := range docs {
		m, err := EvaluateDocument(ctx, s, doc, cfg)
		if err != nil {
			return Metrics{}, fmt.Errorf("evaluating %s: %w", doc.ID, err)
		}
		agg.Add(m)
	}
	agg.Score(cfg)
	return agg, nil
}

// Sweep evaluates each maximum length concurrently and returns results
// sorted by weighted score, best first. Ties keep the order of lengths.
func Sweep(ctx context.Context, docs []*Document, cfg Config, lengths []int) ([]SweepResult, error) {
	results := make([]SweepResult, len(lengths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, n := range lengths {
		g.Go(func() error {
			c := cfg
			c.MaxLength = n
			m, err := EvaluateCorpus(gctx, docs, c)
			if err != nil {
				return fmt.Errorf("max length %d: %w", n, err)
			}
			results[i] = SweepResult{MaxLength: n, Metrics: m}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results, nil
}
