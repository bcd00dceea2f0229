package strategy

import (
	"strings"
	"testing"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
	"github.com/arjunmehta/mdchunk/parse"
)

func buildInput(text string, cfg mdtypes.ChunkConfig) Input {
	normalized := textnorm.Normalize(text)
	lines := textnorm.Lines(normalized)
	analysis, _ := parse.Analyze(normalized)
	return Input{Text: normalized, Lines: lines, Analysis: analysis, Config: cfg}
}

func TestCodeAwareCanHandle(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	s := codeAware{}

	handled := mdtypes.ContentAnalysis{CodeRatio: 0.8, CodeBlockCount: 3}
	if !s.CanHandle(handled, cfg) {
		t.Error("expected CanHandle true for high code ratio + enough blocks")
	}

	notEnough := mdtypes.ContentAnalysis{CodeRatio: 0.8, CodeBlockCount: 1}
	if s.CanHandle(notEnough, cfg) {
		t.Error("expected CanHandle false with too few code blocks")
	}
}

// Scenario B: every fenced code block survives as a single, verbatim
// chunk, even with an aggressively small MaxChunkSize.
func TestCodeAwarePreservesCodeBlockAtomically(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MaxChunkSize = 50
	cfg.MinCodeBlocks = 1
	cfg.CodeRatioThreshold = 0

	code := "func main() {\n\tfmt.Println(\"hello world, this line is long\")\n}"
	text := "intro text\n\n```go\n" + code + "\n```\n\nmore text after"

	in := buildInput(text, cfg)
	s := codeAware{}
	chunks, _, err := s.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, c := range chunks {
		if strings.Contains(c.Content, code) {
			found = true
			if c.Metadata["content_type"] != mdtypes.ChunkTypeCode {
				t.Errorf("content_type = %v, want code", c.Metadata["content_type"])
			}
			if c.Metadata["language"] != "go" {
				t.Errorf("language = %v, want go", c.Metadata["language"])
			}
		}
	}
	if !found {
		t.Fatal("no chunk contains the complete code block verbatim")
	}
}

// Scenario B: an empty info string on a fence defaults language to
// "unknown" rather than empty string.
func TestCodeAwareDefaultsUnknownLanguage(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MinCodeBlocks = 1
	cfg.CodeRatioThreshold = 0

	text := "```\nsome code without a language tag\n```\n"
	in := buildInput(text, cfg)
	s := codeAware{}
	chunks, _, err := s.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata["language"] != "unknown" {
		t.Errorf("language = %v, want unknown", chunks[0].Metadata["language"])
	}
}

func TestEmitAtomicCodeOversizeMetadata(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MaxChunkSize = 10
	cfg.AllowOversize = true

	seg := segment{
		isCode: true,
		text:   "a very long code line that exceeds the max chunk size",
		start:  1,
		end:    1,
		block:  mdtypes.FencedBlock{Language: "python"},
	}
	chunks, warnings := emitAtomicCode(seg, cfg)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 atomic chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata["allow_oversize"] != true {
		t.Error("expected allow_oversize = true in metadata")
	}
	if chunks[0].Metadata["oversize_reason"] != "code_block_atomicity" {
		t.Errorf("oversize_reason = %v, want code_block_atomicity", chunks[0].Metadata["oversize_reason"])
	}
	if len(warnings) == 0 {
		t.Error("expected an oversize warning")
	}
}
