package strategy

import (
	"testing"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

func TestSelectStrictPicksLowestPriorityApplicable(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	analysis := mdtypes.ContentAnalysis{
		CodeRatio:      0.9,
		CodeBlockCount: 5,
		HeaderCountByLevel: map[int]int{
			1: 1,
		},
	}

	s, warnings, err := Select(analysis, cfg, Strict, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if s.Name() != "code_aware" {
		t.Errorf("Name() = %s, want code_aware (lowest priority)", s.Name())
	}
}

func TestSelectFallbackAlwaysApplicable(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	analysis := mdtypes.ContentAnalysis{}

	s, _, err := Select(analysis, cfg, Strict, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "fallback" {
		t.Errorf("Name() = %s, want fallback for an empty analysis", s.Name())
	}
}

func TestSelectForcedUnknownStrategy(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	_, _, err := Select(mdtypes.ContentAnalysis{}, cfg, Strict, "nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown forced strategy")
	}
	serr, ok := err.(*mdtypes.StrategyError)
	if !ok {
		t.Fatalf("error type = %T, want *mdtypes.StrategyError", err)
	}
	if serr.Code != "strategy_not_found" {
		t.Errorf("Code = %s, want strategy_not_found", serr.Code)
	}
}

func TestSelectForcedRejectedFallsThroughWithWarning(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	analysis := mdtypes.ContentAnalysis{} // code_aware.CanHandle rejects this

	s, warnings, err := Select(analysis, cfg, Strict, "code_aware")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "fallback" {
		t.Errorf("Name() = %s, want fallback after rejection", s.Name())
	}
	if len(warnings) == 0 || warnings[0] != "forced_strategy_rejected:code_aware" {
		t.Errorf("warnings = %v, want forced_strategy_rejected:code_aware first", warnings)
	}
}

func TestSelectForcedApplicableHonored(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	analysis := mdtypes.ContentAnalysis{}

	s, warnings, err := Select(analysis, cfg, Strict, "fallback")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "fallback" {
		t.Errorf("Name() = %s, want fallback", s.Name())
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestSelectWeightedPrefersHigherQuality(t *testing.T) {
	cfg := mdtypes.NewChunkConfig()
	analysis := mdtypes.ContentAnalysis{
		CodeRatio:      0.95,
		CodeBlockCount: 4,
	}

	s, _, err := Select(analysis, cfg, Weighted, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name() != "code_aware" {
		t.Errorf("Name() = %s, want code_aware for heavily code-weighted content", s.Name())
	}
}
