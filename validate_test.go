package mdchunk

import "testing"

func TestValidateFullCoveragePasses(t *testing.T) {
	text := "line one\nline two\nline three\n"
	chunks := []Chunk{{Content: text, StartLine: 1, EndLine: 3}}

	result, err := Validate(text, chunks, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Errorf("expected valid, got %+v", result)
	}
}

func TestValidateRejectsInvalidUTF8(t *testing.T) {
	_, err := Validate("valid \xff\xfe invalid", nil, 0.05)
	if err == nil {
		t.Fatal("expected an error for invalid UTF-8")
	}
	if _, ok := err.(*EncodingError); !ok {
		t.Errorf("error type = %T, want *EncodingError", err)
	}
}

func TestValidateNoChunksIsFullyMissing(t *testing.T) {
	text := "some content that is entirely unaccounted for by any chunk"
	result, err := Validate(text, nil, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid {
		t.Error("expected invalid when no chunk covers any content")
	}
	if len(result.MissingBlocks) == 0 {
		t.Error("expected at least one missing block")
	}
}
