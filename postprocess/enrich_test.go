package postprocess

import (
	"strings"
	"testing"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

func TestEnrichFillsPositionalAndSizeMetadata(t *testing.T) {
	chunks := []mdtypes.Chunk{
		{Content: "alpha", StartLine: 1, EndLine: 3},
		{Content: "beta", StartLine: 4, EndLine: 4},
	}
	out := Enrich(chunks, 2)

	if out[0].Metadata["chunk_index"] != 0 || out[1].Metadata["chunk_index"] != 1 {
		t.Errorf("chunk_index not populated in order: %v, %v", out[0].Metadata["chunk_index"], out[1].Metadata["chunk_index"])
	}
	if out[0].Metadata["total_chunks"] != 2 {
		t.Errorf("total_chunks = %v, want 2", out[0].Metadata["total_chunks"])
	}
	if out[0].Metadata["line_count"] != 3 {
		t.Errorf("line_count = %v, want 3", out[0].Metadata["line_count"])
	}
	if out[0].Metadata["size_chars"] != 5 {
		t.Errorf("size_chars = %v, want 5", out[0].Metadata["size_chars"])
	}
	if _, ok := out[0].Metadata["size_tokens"].(int); !ok {
		t.Error("expected size_tokens to be populated as an int")
	}
	if out[0].Metadata["is_first"] != true || out[1].Metadata["is_first"] != false {
		t.Error("is_first not set correctly")
	}
	if out[1].Metadata["is_last"] != true || out[0].Metadata["is_last"] != false {
		t.Error("is_last not set correctly")
	}
}

func TestEnrichDetectsHasCodeTableListURL(t *testing.T) {
	code := Enrich([]mdtypes.Chunk{{Content: "```go\nfmt.Println()\n```"}}, 1)[0]
	if code.Metadata["has_code"] != true {
		t.Error("expected has_code = true")
	}
	if code.Metadata["content_type"] != mdtypes.ChunkTypeCode {
		t.Errorf("content_type = %v, want code", code.Metadata["content_type"])
	}

	table := Enrich([]mdtypes.Chunk{{Content: "| Name | Age |\n|---|---|\n| Alice | 30 |"}}, 1)[0]
	if table.Metadata["has_table"] != true {
		t.Error("expected has_table = true")
	}
	if table.Metadata["content_type"] != mdtypes.ChunkTypeTable {
		t.Errorf("content_type = %v, want table", table.Metadata["content_type"])
	}

	list := Enrich([]mdtypes.Chunk{{Content: "- item one\n- item two"}}, 1)[0]
	if list.Metadata["has_list"] != true {
		t.Error("expected has_list = true")
	}
	if list.Metadata["content_type"] != mdtypes.ChunkTypeList {
		t.Errorf("content_type = %v, want list", list.Metadata["content_type"])
	}

	url := Enrich([]mdtypes.Chunk{{Content: "see https://example.com/path for details"}}, 1)[0]
	if url.Metadata["has_url"] != true {
		t.Error("expected has_url = true")
	}
	if url.Metadata["content_type"] != mdtypes.ChunkTypeText {
		t.Errorf("content_type = %v, want text", url.Metadata["content_type"])
	}
}

func TestEnrichNeverOverwritesExistingFields(t *testing.T) {
	c := mdtypes.Chunk{
		Content:  "```go\nfmt.Println()\n```",
		Metadata: map[string]any{"content_type": mdtypes.ChunkTypeHeader},
	}
	out := Enrich([]mdtypes.Chunk{c}, 1)
	if out[0].Metadata["content_type"] != mdtypes.ChunkTypeHeader {
		t.Errorf("content_type was overwritten: %v", out[0].Metadata["content_type"])
	}
}

func TestEnrichDetectsLanguageForCodeChunks(t *testing.T) {
	c := mdtypes.Chunk{Content: "```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```"}
	out := Enrich([]mdtypes.Chunk{c}, 1)
	if out[0].Metadata["language"] != "go" {
		t.Errorf("language = %v, want go", out[0].Metadata["language"])
	}
}

func TestEnrichPreviewStopsAtFirstSentence(t *testing.T) {
	c := mdtypes.Chunk{Content: "This is a sentence. This continues after."}
	out := Enrich([]mdtypes.Chunk{c}, 1)
	if out[0].Metadata["preview"] != "This is a sentence." {
		t.Errorf("preview = %q, want %q", out[0].Metadata["preview"], "This is a sentence.")
	}
}

func TestEnrichPreviewTruncatesLongUnpunctuatedContent(t *testing.T) {
	c := mdtypes.Chunk{Content: strings.Repeat("a", 150)}
	out := Enrich([]mdtypes.Chunk{c}, 1)
	preview, _ := out[0].Metadata["preview"].(string)
	if len(preview) != previewMaxChars {
		t.Errorf("preview length = %d, want %d", len(preview), previewMaxChars)
	}
}
