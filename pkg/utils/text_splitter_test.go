package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		wantMin   int // minimum number of chunks
	}{
		{
			name:      "empty text",
			text:      "",
			chunkSize: 100,
			overlap:   20,
			wantMin:   0,
		},
		{
			name:      "short text single chunk",
			text:      "hello world",
			chunkSize: 100,
			overlap:   20,
			wantMin:   1,
		},
		{
			name:      "long text splits",
			text:      strings.Repeat("word ", 100),
			chunkSize: 100,
			overlap:   20,
			wantMin:   2,
		},
		{
			name:      "overlap larger than chunk still progresses",
			text:      strings.Repeat("a", 50),
			chunkSize: 10,
			overlap:   10,
			wantMin:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)

			if len(chunks) < tt.wantMin {
				t.Errorf("chunk count = %d, want at least %d", len(chunks), tt.wantMin)
			}
			for i, c := range chunks {
				if len([]rune(c)) > tt.chunkSize {
					t.Errorf("chunk %d length = %d, exceeds %d", i, len([]rune(c)), tt.chunkSize)
				}
			}
		})
	}
}

func TestSplitTextPrefersParagraphBoundary(t *testing.T) {
	para1 := strings.Repeat("a", 70)
	para2 := strings.Repeat("b", 70)
	text := para1 + "\n\n" + para2

	chunks := SplitText(text, 100, 0)

	if len(chunks) < 2 {
		t.Fatalf("chunk count = %d, want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("first chunk should end at the paragraph break, got %q", chunks[0][len(chunks[0])-5:])
	}
}

func TestSplitTextNonPositiveChunkSize(t *testing.T) {
	text := "some text that must survive intact"

	for _, size := range []int{0, -5} {
		chunks := SplitText(text, size, 10)
		if len(chunks) != 1 || chunks[0] != text {
			t.Errorf("SplitText(size=%d) = %v, want single original chunk", size, chunks)
		}
	}
}

func TestSplitTextShortSingleChunkIsOriginal(t *testing.T) {
	text := "one short paragraph"
	chunks := SplitText(text, 1000, 200)

	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("SplitText = %v, want single original chunk", chunks)
	}
}

func TestSplitTextCoversAllContent(t *testing.T) {
	text := strings.Repeat("sentence one. sentence two. ", 30)
	chunks := SplitText(text, 120, 30)

	joined := strings.Join(chunks, "")
	// With overlap the join is longer than the input, never shorter.
	if len(joined) < len(text) {
		t.Errorf("joined chunks length = %d, shorter than input %d", len(joined), len(text))
	}
	if !strings.HasSuffix(text, chunks[len(chunks)-1]) {
		t.Errorf("last chunk does not end the input text")
	}
}
