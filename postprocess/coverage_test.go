package postprocess

import (
	"strings"
	"testing"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

func TestValidateFullCoverage(t *testing.T) {
	input := "line one\nline two\nline three\n"
	chunks := []mdtypes.Chunk{{Content: input, StartLine: 1, EndLine: 3}}

	result := Validate(input, chunks, 0.05)
	if !result.IsValid {
		t.Errorf("expected valid, got warnings %v missing %v", result.Warnings, result.MissingBlocks)
	}
	if result.CharCoverage != 1.0 {
		t.Errorf("CharCoverage = %v, want 1.0", result.CharCoverage)
	}
	if len(result.MissingBlocks) != 0 {
		t.Errorf("expected no missing blocks, got %v", result.MissingBlocks)
	}
}

func TestValidateDetectsSmallMissingBlockWithinTolerance(t *testing.T) {
	input := "aaaaa\nbbbbb\nccccc\nddddd\neeeee\n"
	chunks := []mdtypes.Chunk{
		{Content: "aaaaa\nbbbbb", StartLine: 1, EndLine: 2},
		{Content: "ddddd\neeeee", StartLine: 4, EndLine: 5},
	}

	result := Validate(input, chunks, 0.3)
	if !result.IsValid {
		t.Errorf("expected valid within tolerance, got coverage %v warnings %v", result.CharCoverage, result.Warnings)
	}
	if len(result.MissingBlocks) != 1 {
		t.Fatalf("expected 1 missing block, got %d", len(result.MissingBlocks))
	}
	mb := result.MissingBlocks[0]
	if mb.StartLine != 3 || mb.EndLine != 3 {
		t.Errorf("missing block = lines %d-%d, want 3-3", mb.StartLine, mb.EndLine)
	}
	if mb.SizeChars != 5 {
		t.Errorf("SizeChars = %d, want 5", mb.SizeChars)
	}
}

func TestValidateMissingFractionBeyondToleranceFails(t *testing.T) {
	input := "aaaaa\nbbbbb\nccccc\nddddd\neeeee\n"
	chunks := []mdtypes.Chunk{
		{Content: "ddddd\neeeee", StartLine: 4, EndLine: 5},
	}

	result := Validate(input, chunks, 0.05)
	if result.IsValid {
		t.Error("expected invalid: missing fraction exceeds tolerance")
	}
}

// A contiguous gap of more than 10 lines is always invalid, independent of
// the configured tolerance.
func TestValidateLargeGapAlwaysInvalid(t *testing.T) {
	input := strings.Repeat("x\n", 12)

	result := Validate(input, nil, 1.0)
	if result.IsValid {
		t.Error("expected a 12-line gap to be invalid even with tolerance = 1.0")
	}
	found := false
	for _, w := range result.Warnings {
		if w == "large_coverage_gap" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected large_coverage_gap warning, got %v", result.Warnings)
	}
}

func TestValidateGapAtThresholdIsAcceptable(t *testing.T) {
	input := strings.Repeat("x\n", 10)

	result := Validate(input, nil, 1.0)
	if !result.IsValid {
		t.Errorf("expected a 10-line gap not to trip the large-gap rule, warnings %v", result.Warnings)
	}
	for _, w := range result.Warnings {
		if w == "large_coverage_gap" {
			t.Error("did not expect large_coverage_gap at exactly the threshold")
		}
	}
}

func TestValidateBlankLinesDoNotCountAsMissing(t *testing.T) {
	input := "aaaaa\n\nbbbbb\n"
	chunks := []mdtypes.Chunk{
		{Content: "aaaaa", StartLine: 1, EndLine: 1},
		{Content: "bbbbb", StartLine: 3, EndLine: 3},
	}

	result := Validate(input, chunks, 0)
	if !result.IsValid {
		t.Errorf("expected valid: the uncovered line is blank, got %v", result.MissingBlocks)
	}
}
