package postprocess

import (
	"strings"
	"testing"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

func textChunk(content, sectionPath string, headerLevel int) mdtypes.Chunk {
	return mdtypes.Chunk{
		Content:   content,
		StartLine: 1,
		EndLine:   1,
		Metadata: map[string]any{
			"content_type": mdtypes.ChunkTypeText,
			"section_path": sectionPath,
			"header_level": headerLevel,
		},
	}
}

func TestMergeCombinesAdjacentUndersizedChunks(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MinChunkSize = 100
	cfg.MaxChunkSize = 1000

	a := textChunk(strings.Repeat("a", 10), "/X", 1)
	b := textChunk(strings.Repeat("b", 10), "/X", 1)

	out, warnings := Merge([]mdtypes.Chunk{a, b}, cfg)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 merged chunk, got %d", len(out))
	}
	if out[0].Metadata["merged"] != true {
		t.Error("expected merged = true on the combined chunk")
	}
	if !strings.Contains(out[0].Content, strings.Repeat("a", 10)) || !strings.Contains(out[0].Content, strings.Repeat("b", 10)) {
		t.Errorf("combined content missing original text: %q", out[0].Content)
	}
}

func TestMergeNeverCombinesAtomicChunks(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MinChunkSize = 100
	cfg.MaxChunkSize = 1000

	code := mdtypes.Chunk{
		Content:   strings.Repeat("c", 10),
		Metadata:  map[string]any{"content_type": mdtypes.ChunkTypeCode, "section_path": "/X"},
	}
	text := textChunk(strings.Repeat("t", 10), "/X", 1)

	out, warnings := Merge([]mdtypes.Chunk{code, text}, cfg)
	if len(out) != 2 {
		t.Fatalf("expected the atomic chunk to stay separate, got %d chunks", len(out))
	}
	if len(warnings) != 1 || warnings[0] != "undersized_chunk" {
		t.Errorf("warnings = %v, want [undersized_chunk]", warnings)
	}
}

func TestMergeRespectsProtectedHeaderBoundary(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MinChunkSize = 100
	cfg.MaxChunkSize = 1000
	cfg.RespectHeaderLevel = 1

	a := textChunk(strings.Repeat("a", 10), "/X", 1)
	b := textChunk(strings.Repeat("b", 10), "/Y", 1)

	out, warnings := Merge([]mdtypes.Chunk{a, b}, cfg)
	if len(out) != 2 {
		t.Fatalf("expected the H1 boundary to block the merge, got %d chunks", len(out))
	}
	if len(warnings) != 2 || warnings[0] != "undersized_chunk" || warnings[1] != "undersized_chunk" {
		t.Errorf("warnings = %v, want [undersized_chunk undersized_chunk]", warnings)
	}
}

func TestMergeAllowsCrossingLowPriorityBoundary(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MinChunkSize = 100
	cfg.MaxChunkSize = 1000
	cfg.RespectHeaderLevel = 1

	a := textChunk(strings.Repeat("a", 10), "/X/Sub1", 2)
	b := textChunk(strings.Repeat("b", 10), "/X/Sub2", 2)

	out, _ := Merge([]mdtypes.Chunk{a, b}, cfg)
	if len(out) != 1 {
		t.Fatalf("expected an H2 boundary (below RespectHeaderLevel) to be crossable, got %d chunks", len(out))
	}
}

func TestMergeReindexesChunkIndices(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	cfg.MinChunkSize = 0 // nothing is undersized, no merges happen

	a := textChunk(strings.Repeat("a", 500), "/X", 1)
	b := textChunk(strings.Repeat("b", 500), "/X", 1)
	c := textChunk(strings.Repeat("c", 500), "/X", 1)

	out, _ := Merge([]mdtypes.Chunk{a, b, c}, cfg)
	if len(out) != 3 {
		t.Fatalf("expected no merges, got %d chunks", len(out))
	}
	for i, ch := range out {
		if ch.Metadata["chunk_index"] != i {
			t.Errorf("chunk %d: chunk_index = %v, want %d", i, ch.Metadata["chunk_index"], i)
		}
		if ch.Metadata["total_chunks"] != 3 {
			t.Errorf("chunk %d: total_chunks = %v, want 3", i, ch.Metadata["total_chunks"])
		}
	}
}
