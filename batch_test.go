package mdchunk

import (
	"context"
	"testing"
)

func TestChunkBatchPreservesOrder(t *testing.T) {
	docs := []BatchInput{
		{ID: "a", Text: "# A\n\ncontent a\n"},
		{ID: "b", Text: "# B\n\ncontent b\n"},
		{ID: "c", Text: "# C\n\ncontent c\n"},
	}

	results, err := ChunkBatch(context.Background(), docs, NewChunkConfig(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %s, want %s", i, results[i].ID, want)
		}
		if results[i].Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, results[i].Err)
		}
		if !results[i].Result.Success {
			t.Errorf("results[%d].Result.Success = false", i)
		}
	}
}

func TestChunkBatchPerDocumentErrorDoesNotCancelOthers(t *testing.T) {
	docs := []BatchInput{
		{ID: "good", Text: "# Good\n\nfine content\n"},
		{ID: "bad", Text: "invalid \xff\xfe utf8"},
		{ID: "also-good", Text: "# Also Good\n\nmore fine content\n"},
	}

	results, err := ChunkBatch(context.Background(), docs, NewChunkConfig(), 4)
	if err != nil {
		t.Fatalf("unexpected top-level error: %v", err)
	}
	if results[1].Err == nil {
		t.Error("expected the bad document to report an error")
	}
	if results[0].Err != nil || !results[0].Result.Success {
		t.Errorf("good document affected by sibling failure: %+v", results[0])
	}
	if results[2].Err != nil || !results[2].Result.Success {
		t.Errorf("also-good document affected by sibling failure: %+v", results[2])
	}
}

func TestChunkBatchGeneratesIDWhenEmpty(t *testing.T) {
	docs := []BatchInput{{Text: "plain text, no headers"}}
	results, err := ChunkBatch(context.Background(), docs, NewChunkConfig(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].ID == "" {
		t.Error("expected a generated ID for an empty BatchInput.ID")
	}
}

func TestChunkBatchDefaultsConcurrency(t *testing.T) {
	docs := []BatchInput{{ID: "only", Text: "plain text, no headers"}}
	results, err := ChunkBatch(context.Background(), docs, NewChunkConfig(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Errorf("unexpected results: %+v", results)
	}
}
