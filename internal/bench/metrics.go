package bench

import (
	"context"
	"strings"

	sentsplit "github.com/jamesainslie/go-sentsplit"
)

// Config holds evaluation parameters.
type Config struct {
	MaxLength       int
	Tolerance       int // byte match tolerance
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		MaxLength:       sentsplit.DefaultMaxLength,
		Tolerance:       3,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64

	// Segments counts emitted segments; HardCuts counts those cut
	// mid-word because the window had no boundary.
	Segments int
	HardCuts int
}

// HardCutRate returns the fraction of segments that were hard cuts.
func (m Metrics) HardCutRate() float64 {
	if m.Segments == 0 {
		return 0
	}
	return float64(m.HardCuts) / float64(m.Segments)
}

// Add accumulates the counts of o into m. Scores are not recomputed.
func (m *Metrics) Add(o Metrics) {
	m.TruePositives += o.TruePositives
	m.FalsePositives += o.FalsePositives
	m.FalseNegatives += o.FalseNegatives
	m.Segments += o.Segments
	m.HardCuts += o.HardCuts
}

// Score fills in precision, recall, F1 and the weighted score from the
// counts.
func (m *Metrics) Score(cfg Config) {
	tp, fp, fn := m.TruePositives, m.FalsePositives, m.FalseNegatives

	m.Precision, m.Recall, m.F1, m.WeightedScore = 0, 0, 0, 0
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
}

// Evaluate compares predicted boundaries against ground truth.
// Uses greedy left-to-right matching within tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			diff := p - t
			if diff < 0 {
				diff = -diff
			}
			if diff <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	m := Metrics{
		TruePositives:  tp,
		FalsePositives: len(predicted) - tp,
		FalseNegatives: len(truth) - tp,
	}
	m.Score(cfg)
	return m
}

// spaceChars matches the splitter's whitespace class.
const spaceChars = " \t\r\n\f"

// Boundaries runs s over text and returns the byte offset just past the
// text of every segment, excluding the end of the input, along with the
// segment and hard cut counts.
func Boundaries(ctx context.Context, s *sentsplit.Splitter, text string) (offsets []int, segments, hardCuts int, err error) {
	limit := len(strings.TrimRight(text, spaceChars))
	for seg := range s.All(text) {
		if err := ctx.Err(); err != nil {
			return nil, 0, 0, err
		}
		segments++

		end := seg.Start + strings.Index(text[seg.Start:seg.End], seg.Text) + len(seg.Text)
		if end >= limit {
			continue
		}
		offsets = append(offsets, end)
		if seg.Class == sentsplit.ClassOther {
			hardCuts++
		}
	}
	return offsets, segments, hardCuts, nil
}

// EvaluateDocument splits doc with s and scores the cuts against the
// document's reference boundaries. The boundary at the end of the text is
// ignored on both sides.
func EvaluateDocument(ctx context.Context, s *sentsplit.Splitter, doc *Document, cfg Config) (Metrics, error) {
	predicted, segments, hardCuts, err := Boundaries(ctx, s, doc.Text)
	if err != nil {
		return Metrics{}, err
	}

	limit := len(strings.TrimRight(doc.Text, spaceChars))
	truth := make([]int, 0, len(doc.Boundaries))
	for _, b := range doc.Boundaries {
		if b < limit {
			truth = append(truth, b)
		}
	}

	m := Evaluate(predicted, truth, cfg)
	m.Segments = segments
	m.HardCuts = hardCuts
	return m, nil
}
