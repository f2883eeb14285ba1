package services

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// TextChunker splits reference documents into overlapping pieces small
// enough to embed.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

type chunkBuilder struct {
	maxSize int
	overlap int
	chunks  []string
	current strings.Builder
	runes   int
}

func (b *chunkBuilder) add(piece, sep string) {
	pieceLen := utf8.RuneCountInString(piece)
	sepLen := utf8.RuneCountInString(sep)
	if b.runes > 0 && b.runes+sepLen+pieceLen > b.maxSize {
		b.flush(sepLen + pieceLen)
	}
	if b.runes > 0 {
		b.write(sep)
	}
	b.write(piece)
}

// flush closes the current chunk and seeds the next one with its tail,
// unless the tail and the incoming piece would not fit together.
func (b *chunkBuilder) flush(incoming int) {
	prev := b.current.String()
	b.chunks = append(b.chunks, prev)
	b.current.Reset()
	b.runes = 0

	tail := lastRunes(prev, b.overlap)
	if tail != "" && utf8.RuneCountInString(tail)+incoming <= b.maxSize {
		b.write(tail)
	}
}

func (b *chunkBuilder) write(s string) {
	b.current.WriteString(s)
	b.runes += utf8.RuneCountInString(s)
}

func (b *chunkBuilder) finish() []string {
	if b.runes > 0 {
		b.chunks = append(b.chunks, b.current.String())
	}
	return b.chunks
}

// ChunkText implements TextChunker. Paragraphs are kept whole where they fit;
// longer ones are broken at sentence boundaries.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	b := &chunkBuilder{maxSize: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			b.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			b.add(sentence, " ")
		}
	}

	return b.finish()
}

func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}
	return result
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
