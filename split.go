package sentsplit

import (
	"fmt"
	"iter"
	"log/slog"
	"unicode/utf8"
)

// Splitter cuts text into segments of bounded length, preferring sentence
// ends, then clause punctuation, then whitespace.
// It is immutable and safe for concurrent use.
type Splitter struct {
	maxLength int
	logger    *slog.Logger
}

// New creates a Splitter.
func New(opts ...Option) (*Splitter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.maxLength < MinLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLength, cfg.maxLength)
	}

	return &Splitter{
		maxLength: cfg.maxLength,
		logger:    cfg.logger,
	}, nil
}

// MaxLength returns the maximum segment length in characters.
func (s *Splitter) MaxLength() int {
	return s.maxLength
}

// Segment is one emitted piece of the input.
type Segment struct {
	// Index is the position of the segment in the output sequence.
	Index int
	// Text is the non-empty, trimmed segment text.
	Text string
	// Start and End delimit the bytes of the input consumed to produce
	// this segment, including any skipped boundary whitespace.
	Start int
	End   int
	// Class is the boundary class the segment was cut on.
	Class Class
}

// Split returns a lazy stream of segments over text. No work is done
// until Next is called.
func (s *Splitter) Split(text string) *Stream {
	return &Stream{
		text:      text,
		maxLength: s.maxLength,
		logger:    s.logger,
	}
}

// All returns the segments of text as an iterator. Stopping the range
// loop early abandons the remaining input.
func (s *Splitter) All(text string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		st := s.Split(text)
		for {
			seg, ok := st.Next()
			if !ok || !yield(seg) {
				return
			}
		}
	}
}

// Strings returns the text of every segment of text.
func (s *Splitter) Strings(text string) []string {
	var out []string
	for seg := range s.All(text) {
		out = append(out, seg.Text)
	}
	return out
}

// Stream produces the segments of one input, one per call to Next.
// It is forward-only and cannot be restarted. A Stream must not be used
// from more than one goroutine at a time.
type Stream struct {
	text      string
	maxLength int
	logger    *slog.Logger

	start int
	index int
	steps int
}

// Next returns the next segment, or false once the input is exhausted.
//
// Windows whose cut leaves only whitespace consume their range without
// producing a segment.
func (st *Stream) Next() (Segment, bool) {
	for st.start < len(st.text) {
		end := windowEnd(st.text, st.start, st.maxLength)
		cut := Extract(st.text[st.start:end])

		seg := Segment{
			Text:  cut.Text,
			Start: st.start,
			End:   st.start + cut.Next,
			Class: cut.Class,
		}
		st.start = seg.End
		st.steps++

		if cut.Class == ClassOther && st.start < len(st.text) && st.logger != nil {
			st.logger.Debug("hard cut", "offset", seg.Start, "length", utf8.RuneCountInString(cut.Text))
		}

		if seg.Text == "" {
			continue
		}

		seg.Index = st.index
		st.index++
		return seg, true
	}

	return Segment{}, false
}

// Offset returns the byte offset in the input where the next window starts.
func (st *Stream) Offset() int {
	return st.start
}

// Steps returns the number of windows examined so far.
func (st *Stream) Steps() int {
	return st.steps
}

// windowEnd returns the byte offset just past the first n runes of
// text[start:], or len(text) if fewer remain.
func windowEnd(text string, start, n int) int {
	end := start
	for i := 0; i < n && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return end
}
