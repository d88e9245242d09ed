package chunk

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultSeparators is the ordered fallback list used to split crawled
// markdown: paragraph break, line break, space, sentence punctuation
// including the full-width and ideographic variants, then the empty
// string meaning a character-level split.
var DefaultSeparators = []string{
	"\n\n", "\n", " ", ".", ",",
	"​", // zero-width space
	"，", // fullwidth comma
	"、", // ideographic comma
	"．", // fullwidth full stop
	"。", // ideographic full stop
	"",
}

// Splitter breaks text into bounded chunks by recursive separator
// fallback, merging adjacent small pieces back together and carrying
// chunkOverlap trailing characters from each chunk into the next.
// Lengths are measured in runes. Splitting is deterministic.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

func NewSplitter(chunkSize, chunkOverlap int) (*Splitter, error) {
	return NewSplitterWithSeparators(chunkSize, chunkOverlap, DefaultSeparators)
}

func NewSplitterWithSeparators(chunkSize, chunkOverlap int, separators []string) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", chunkOverlap, chunkSize)
	}
	if len(separators) == 0 {
		return nil, fmt.Errorf("at least one separator is required")
	}
	return &Splitter{chunkSize: chunkSize, chunkOverlap: chunkOverlap, separators: separators}, nil
}

// Split returns the ordered chunk sequence for text. Every chunk is at
// most chunkSize runes long, except a single unsplittable unit longer
// than chunkSize when no finer separator remains; such a unit is emitted
// oversize rather than truncated.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	// Pick the first separator present in the text; everything after it
	// stays available for recursing into oversize pieces.
	separator := ""
	var remaining []string
	for i, sep := range separators {
		if sep == "" {
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	var chunks []string
	var pending []string
	for _, piece := range splitKeepSeparator(text, separator) {
		if utf8.RuneCountInString(piece) < s.chunkSize {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			chunks = append(chunks, s.merge(pending)...)
			pending = nil
		}
		if len(remaining) == 0 {
			// Unsplittable unit above the limit: keep it whole.
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, s.split(piece, remaining)...)
		}
	}
	if len(pending) > 0 {
		chunks = append(chunks, s.merge(pending)...)
	}
	return chunks
}

// merge greedily packs small pieces into chunks of at most chunkSize
// runes. When a chunk is emitted, leading pieces are dropped until the
// retained tail fits within chunkOverlap and leaves room for the
// incoming piece, so consecutive chunks share trailing context.
func (s *Splitter) merge(pieces []string) []string {
	var docs []string
	var current []string
	total := 0

	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total+n > s.chunkSize && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
				docs = append(docs, doc)
			}
			for len(current) > 0 && (total > s.chunkOverlap || total+n > s.chunkSize) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
	}

	if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

// splitKeepSeparator splits text on separator, keeping the separator
// prefixed to the piece that follows it so no characters are lost when
// pieces are merged back. An empty separator splits into single runes.
func splitKeepSeparator(text, separator string) []string {
	if separator == "" {
		runes := []rune(text)
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = string(r)
		}
		return out
	}

	parts := strings.Split(text, separator)
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i > 0 {
			p = separator + p
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
