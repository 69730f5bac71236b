// Command sentsplit-bench scores splitter cuts against reference sentence
// boundaries over a corpus directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jamesainslie/go-sentsplit/internal/bench"
)

func main() {
	var (
		corpusDir = flag.String("corpus", "testdata/corpus", "Directory containing .txt and .json corpus files")
		maxLength = flag.Int("max-length", 256, "Maximum segment length in characters")
		tolerance = flag.Int("tolerance", 3, "Byte tolerance for boundary matching")
		wp        = flag.Float64("wp", 1.0, "Precision weight")
		wr        = flag.Float64("wr", 1.0, "Recall weight")
		sweep     = flag.Bool("sweep", false, "Run maximum length sweep")
		sweepMin  = flag.Int("sweep-min", 32, "Sweep minimum length")
		sweepMax  = flag.Int("sweep-max", 512, "Sweep maximum length (exclusive)")
		sweepStep = flag.Int("sweep-step", 32, "Sweep step size")
	)
	flag.Parse()

	docs, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		fmt.Fprintf(os.Stderr, "error: no .txt or .json documents in %s\n", *corpusDir)
		os.Exit(1)
	}

	sentences := 0
	for _, d := range docs {
		sentences += d.Sentences()
	}
	fmt.Printf("Loaded %d documents (%d sentences) from %s\n\n", len(docs), sentences, *corpusDir)

	cfg := bench.Config{
		MaxLength:       *maxLength,
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *sweep {
		runSweep(ctx, docs, cfg, *sweepMin, *sweepMax, *sweepStep)
	} else {
		runSingle(ctx, docs, cfg)
	}
}

func runSingle(ctx context.Context, docs []*bench.Document, cfg bench.Config) {
	m, err := bench.EvaluateCorpus(ctx, docs, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Max length: %d\n", cfg.MaxLength)
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
	fmt.Printf("Segments: %d  Hard cuts: %d (%.1f%%)\n", m.Segments, m.HardCuts, 100*m.HardCutRate())
}

func runSweep(ctx context.Context, docs []*bench.Document, cfg bench.Config, min, max, step int) {
	lengths := bench.SweepLengths(min, max, step)
	if len(lengths) == 0 {
		fmt.Fprintln(os.Stderr, "error: empty sweep range")
		os.Exit(1)
	}

	results, err := bench.Sweep(ctx, docs, cfg, lengths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Max Length Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s %-8s\n", "MaxLen", "Prec", "Rec", "F1", "Weighted", "HardCut")

	// Print in length order for readability
	byLength := make(map[int]bench.Metrics, len(results))
	for _, r := range results {
		byLength[r.MaxLength] = r.Metrics
	}
	for _, n := range lengths {
		m := byLength[n]
		fmt.Printf("%-8d %-8.2f %-8.2f %-8.2f %-8.2f %-8.3f\n",
			n, m.Precision, m.Recall, m.F1, m.WeightedScore, m.HardCutRate())
	}

	fmt.Println(strings.Repeat("-", 60))
	best := results[0]
	fmt.Printf("Optimal: %d (Weighted: %.2f)\n", best.MaxLength, best.Metrics.WeightedScore)
}
