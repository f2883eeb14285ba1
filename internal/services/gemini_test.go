package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateUTF8(t *testing.T) {
	short := "résumé"
	if got := truncateUTF8(short, 100); got != short {
		t.Errorf("short text changed: %q", got)
	}

	// "é" is two bytes, so an odd limit lands mid-rune
	long := strings.Repeat("é", maxEmbeddingBytes)
	got := truncateUTF8(long, maxEmbeddingBytes-1)
	if !utf8.ValidString(got) {
		t.Fatal("truncated text is not valid UTF-8")
	}
	if len(got) > maxEmbeddingBytes-1 {
		t.Errorf("len = %d, want <= %d", len(got), maxEmbeddingBytes-1)
	}
	if len(got) != maxEmbeddingBytes-2 {
		t.Errorf("len = %d, want %d", len(got), maxEmbeddingBytes-2)
	}

	cjk := strings.Repeat("面接", 10)
	for limit := 0; limit <= len(cjk); limit++ {
		if out := truncateUTF8(cjk, limit); !utf8.ValidString(out) || len(out) > limit {
			t.Fatalf("limit %d: got %q", limit, out)
		}
	}
}
