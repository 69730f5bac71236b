// Package sentsplit cuts long text into bounded-length segments for
// streaming to consumers such as speech synthesizers.
//
// # Quick Start
//
//	sp, err := sentsplit.New(sentsplit.WithMaxLength(256))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for seg := range sp.All(text) {
//	    fmt.Printf("%d: %q\n", seg.Index, seg.Text)
//	}
//
// # Cut Policy
//
// Each step takes a window of at most MaxLength characters from the
// remaining input and scans it backwards once. The cut is made after the
// right-most sentence terminator (. ! ? ;); failing that after the
// right-most clause mark (- : ,); failing that at the right-most whitespace
// character, which is dropped. A window without any of these is emitted
// whole. Emitted text is trimmed of surrounding whitespace and windows that
// trim to nothing produce no segment.
//
// Lengths are counted in Unicode code points, never splitting a character.
//
// # Thread Safety
//
// Splitter is safe for concurrent use. Each call to Split or All returns an
// independent stream that holds no resources, so abandoning it part way
// through needs no cleanup.
package sentsplit
