// Package bench measures how closely splitter cuts line up with reference
// sentence boundaries.
package bench

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Header contains metadata parsed from a text document's comment header.
type Header struct {
	Source  string
	Speaker string
	Title   string
}

// ParseHeader extracts metadata from header comments.
// Returns the header, remaining text after header, and any error.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	var bodyStart int
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Speaker:"); ok {
			h.Speaker = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	return h, strings.TrimSpace(text[bodyStart:]), nil
}

// Sentence is a reference sentence with byte offsets into its document.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// Common abbreviations that shouldn't end sentences
var abbreviations = regexp.MustCompile(`(?i)\b(Mr|Mrs|Ms|Dr|Prof|Sr|Jr|vs|etc|i\.e|e\.g|U\.S|U\.K)\.$`)

// ParseSentences derives reference sentences from plain text by cutting
// after . ? or ! when followed by whitespace, skipping common
// abbreviations.
func ParseSentences(text string) []Sentence {
	if text == "" {
		return nil
	}

	var sentences []Sentence
	start := 0

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '.' && ch != '?' && ch != '!' {
			continue
		}
		if i != len(text)-1 && text[i+1] != ' ' && text[i+1] != '\n' {
			continue
		}
		if ch == '.' && abbreviations.MatchString(text[start:i+1]) {
			continue
		}

		end := i + 1
		sentences = append(sentences, Sentence{
			Text:  strings.TrimSpace(text[start:end]),
			Start: start,
			End:   end,
		})

		for i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\n') {
			i++
		}
		start = i + 1
	}

	if start < len(text) {
		if remaining := strings.TrimSpace(text[start:]); remaining != "" {
			sentences = append(sentences, Sentence{
				Text:  remaining,
				Start: start,
				End:   len(text),
			})
		}
	}

	return sentences
}

// Document is one benchmark input with its reference boundaries.
type Document struct {
	ID      string // filename without extension
	Source  string
	Speaker string
	Title   string
	Text    string

	// Boundaries are the byte offsets just past each reference sentence,
	// ascending.
	Boundaries []int
}

// Sentences returns the number of reference sentences.
func (d *Document) Sentences() int {
	return len(d.Boundaries)
}

// jsonCorpus is the on-disk layout of pre-annotated corpora, such as
// treebank exports, where boundaries are already known.
type jsonCorpus struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Text       string `json:"text"`
	Sentences  int    `json:"sentences"`
	Boundaries []int  `json:"boundaries"`
}

// LoadText loads a .txt document with a comment header and derives its
// boundaries with ParseSentences.
func LoadText(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	sentences := ParseSentences(body)
	boundaries := make([]int, 0, len(sentences))
	for _, s := range sentences {
		boundaries = append(boundaries, s.End)
	}

	return &Document{
		ID:         fileID(path),
		Source:     header.Source,
		Speaker:    header.Speaker,
		Title:      header.Title,
		Text:       body,
		Boundaries: boundaries,
	}, nil
}

// LoadJSON loads a pre-annotated .json corpus.
func LoadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var c jsonCorpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}

	for _, b := range c.Boundaries {
		if b < 0 || b > len(c.Text) {
			return nil, fmt.Errorf("boundary %d outside text of %d bytes", b, len(c.Text))
		}
	}
	if !sort.IntsAreSorted(c.Boundaries) {
		return nil, errors.New("boundaries are not ascending")
	}

	return &Document{
		ID:         fileID(path),
		Source:     c.Source,
		Title:      c.Name,
		Text:       c.Text,
		Boundaries: c.Boundaries,
	}, nil
}

// LoadCorpus loads every .txt and .json document in dir, in name order.
func LoadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		var load func(string) (*Document, error)
		switch filepath.Ext(entry.Name()) {
		case ".txt":
			load = LoadText
		case ".json":
			load = LoadJSON
		default:
			continue
		}

		doc, err := load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func fileID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
