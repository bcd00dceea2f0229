package parse

import (
	"testing"

	"github.com/arjunmehta/mdchunk/internal/textnorm"
)

func TestScanFencesSimple(t *testing.T) {
	text := "before\n```go\nfmt.Println(1)\n```\nafter"
	lines := textnorm.Lines(text)

	blocks, warnings := ScanFences(lines)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.StartLine != 2 || b.EndLine != 4 {
		t.Errorf("got start=%d end=%d, want 2,4", b.StartLine, b.EndLine)
	}
	if b.Language != "go" {
		t.Errorf("language = %q, want go", b.Language)
	}
	if b.Unclosed {
		t.Error("block should not be marked unclosed")
	}
}

// Scenario C: an unclosed fence runs to end of document and is flagged.
func TestScanFencesUnclosed(t *testing.T) {
	text := "text\n```python\nprint(1)\nstill going"
	lines := textnorm.Lines(text)

	blocks, warnings := ScanFences(lines)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !blocks[0].Unclosed {
		t.Error("expected block to be marked unclosed")
	}
	if blocks[0].EndLine != len(lines) {
		t.Errorf("unclosed block should run to EOF, got end=%d want %d", blocks[0].EndLine, len(lines))
	}
	found := false
	for _, w := range warnings {
		if w == "unclosed_fence" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unclosed_fence warning, got %v", warnings)
	}
}

// Scenario D: a shorter same-character fence nested inside a longer outer
// fence is treated as content, not a closer.
func TestScanFencesNested(t *testing.T) {
	text := "````markdown\n```go\ncode\n```\n````"
	lines := textnorm.Lines(text)

	blocks, _ := ScanFences(lines)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 outer block, got %d", len(blocks))
	}
	if blocks[0].StartLine != 1 || blocks[0].EndLine != 5 {
		t.Errorf("got start=%d end=%d, want 1,5", blocks[0].StartLine, blocks[0].EndLine)
	}
}

func TestScanFencesTilde(t *testing.T) {
	text := "~~~\ncode here\n~~~"
	lines := textnorm.Lines(text)

	blocks, _ := ScanFences(lines)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].FenceType != "tilde" {
		t.Errorf("FenceType = %q, want tilde", blocks[0].FenceType)
	}
}

func TestInFencedBlock(t *testing.T) {
	text := "a\n```\nb\nc\n```\nd"
	lines := textnorm.Lines(text)
	blocks, _ := ScanFences(lines)

	cases := map[int]bool{1: false, 2: true, 3: true, 4: true, 5: true, 6: false}
	for line, want := range cases {
		if got := InFencedBlock(line, blocks); got != want {
			t.Errorf("InFencedBlock(%d) = %v, want %v", line, got, want)
		}
	}
}

func TestFenceBalance(t *testing.T) {
	if !FenceBalance("```go\nfmt.Println(1)\n```") {
		t.Error("balanced fence reported unbalanced")
	}
	if FenceBalance("```go\nfmt.Println(1)") {
		t.Error("unclosed fence reported balanced")
	}
}
