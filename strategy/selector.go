package strategy

import (
	"sort"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

// SelectionMode chooses how Select resolves among applicable strategies
// (spec §4.5).
type SelectionMode int

// Recognized selection modes (spec §4.5).
const (
	Strict SelectionMode = iota
	Weighted
)

// Select picks exactly one strategy (spec §4.5). forced, if non-empty,
// names a strategy the caller wants to use; Select still validates
// CanHandle and falls back (with a warning) if the forced strategy
// rejects the input.
func Select(analysis mdtypes.ContentAnalysis, cfg mdtypes.ChunkConfig, mode SelectionMode, forced string) (Strategy, []string, error) {
	candidates := Registry()

	if forced != "" {
		s := findByName(candidates, forced)
		if s == nil {
			names := names(candidates)
			return nil, nil, &mdtypes.StrategyError{
				Strategy: forced, Candidates: names, Code: "strategy_not_found",
			}
		}
		if s.CanHandle(analysis, cfg) {
			return s, nil, nil
		}
		// Forced strategy rejects: fall through to normal selection with
		// a warning (spec §4.5 "Override").
		chosen, warnings, err := selectNormal(candidates, analysis, cfg, mode)
		warnings = append([]string{"forced_strategy_rejected:" + forced}, warnings...)
		return chosen, warnings, err
	}

	return selectNormal(candidates, analysis, cfg, mode)
}

func selectNormal(candidates []Strategy, analysis mdtypes.ContentAnalysis, cfg mdtypes.ChunkConfig, mode SelectionMode) (Strategy, []string, error) {
	var applicable []Strategy
	for _, s := range candidates {
		if s.CanHandle(analysis, cfg) {
			applicable = append(applicable, s)
		}
	}
	if len(applicable) == 0 {
		// The fallback strategy's CanHandle always returns true (spec
		// §4.5), so this path is unreachable in a correctly implemented
		// registry; guard it anyway as the spec's NoStrategyCanHandle
		// fatal condition (§7 StrategyError).
		return nil, nil, &mdtypes.StrategyError{
			Candidates: names(candidates), Code: "no_strategy_can_handle",
		}
	}

	switch mode {
	case Strict:
		sort.SliceStable(applicable, func(i, j int) bool { return applicable[i].Priority() < applicable[j].Priority() })
		return applicable[0], nil, nil
	default: // Weighted
		best := applicable[0]
		bestScore := weightedScore(best, analysis)
		for _, s := range applicable[1:] {
			score := weightedScore(s, analysis)
			if score > bestScore || (score == bestScore && s.Priority() < best.Priority()) {
				best, bestScore = s, score
			}
		}
		return best, nil, nil
	}
}

// weightedScore implements spec §4.5's weighted-mode formula:
// score = (11 - priority) * 0.5 + quality * 0.5.
func weightedScore(s Strategy, analysis mdtypes.ContentAnalysis) float64 {
	return float64(11-s.Priority())*0.5 + s.Quality(analysis)*0.5
}

func findByName(candidates []Strategy, name string) Strategy {
	for _, s := range candidates {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func names(candidates []Strategy) []string {
	out := make([]string, len(candidates))
	for i, s := range candidates {
		out[i] = s.Name()
	}
	return out
}
