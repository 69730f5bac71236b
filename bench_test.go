package sentsplit

import (
	"fmt"
	"strings"
	"testing"
)

func BenchmarkSplitter_All(b *testing.B) {
	prose := strings.Repeat("The quick brown fox jumps over the lazy dog, then rests. ", 2000)
	inputs := map[string]string{
		"prose":       prose,
		"no-boundary": strings.Repeat("a", len(prose)),
		"spaces-only": strings.Repeat("word ", len(prose)/5),
	}

	for _, maxLength := range []int{64, 256, 1024} {
		s, err := New(WithMaxLength(maxLength))
		if err != nil {
			b.Fatal(err)
		}
		for name, text := range inputs {
			b.Run(fmt.Sprintf("%s/max=%d", name, maxLength), func(b *testing.B) {
				b.SetBytes(int64(len(text)))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					for range s.All(text) {
					}
				}
			})
		}
	}
}

func BenchmarkExtract(b *testing.B) {
	window := strings.Repeat("clause, ", 32)
	b.SetBytes(int64(len(window)))
	for i := 0; i < b.N; i++ {
		_ = Extract(window)
	}
}
