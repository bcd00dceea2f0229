package mdchunk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arjunmehta/mdchunk/internal/textnorm"
	"github.com/arjunmehta/mdchunk/parse"
	"github.com/arjunmehta/mdchunk/postprocess"
	"github.com/arjunmehta/mdchunk/strategy"
)

// stage identifies a step of the orchestrator's state machine (spec
// §4.13). It exists mainly for diagnostics; Chunk does not expose it.
type stage string

// Recognized orchestrator stages (spec §4.13).
const (
	stageInit        stage = "init"
	stageAnalyzing   stage = "analyzing"
	stageSelecting   stage = "selecting"
	stageChunking    stage = "chunking"
	stageMerging     stage = "merging"
	stageOverlapping stage = "overlapping"
	stageEnriching   stage = "enriching"
	stageValidating  stage = "validating"
	stageDone        stage = "done"
	stageFailed      stage = "failed"
)

// runChunking drives the Init -> Analyzing -> Selecting -> Chunking ->
// Merging -> Overlapping -> Enriching -> Validating -> Done|Failed state
// machine (spec §4.13). It recovers an invariantPanic raised by
// checkInvariants and converts it to a *ValidationError, the only path by
// which an internal bug surfaces to a caller of Chunk.
func runChunking(text string, cfg ChunkConfig, opts options) (result ChunkingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ip, ok := r.(invariantPanic); ok {
				err = ip.Err
				result.Success = false
				return
			}
			panic(r)
		}
	}()

	st := stageInit
	_ = st

	st = stageAnalyzing
	normalized := textnorm.Normalize(text)
	lines := textnorm.Lines(normalized)

	analysis, warnings := parse.Analyze(normalized)
	if cfg.ExtractPreamble {
		analysis.Preamble = parse.ExtractPreamble(normalized, analysis.Headers)
	}

	st = stageSelecting
	chunks, selWarnings, strategyUsed, err := selectAndApply(normalized, lines, analysis, cfg, opts)
	warnings = append(warnings, selWarnings...)
	if err != nil {
		st = stageFailed
		return ChunkingResult{Analysis: analysis, Warnings: warnings, StrategyUsed: strategyUsed, Success: false}, err
	}
	st = stageChunking

	checkInvariants(chunks)

	st = stageMerging
	chunks, mergeWarnings := postprocess.Merge(chunks, cfg)
	warnings = append(warnings, mergeWarnings...)

	if cfg.SeparatePreambleChunk && analysis.Preamble != nil {
		chunks = prependPreambleChunk(chunks, *analysis.Preamble)
	}

	st = stageOverlapping
	chunks, overlapWarnings := postprocess.Overlap(chunks, cfg, opts.overlapMode)
	warnings = append(warnings, overlapWarnings...)

	st = stageEnriching
	for i := range chunks {
		chunks[i].Metadata["strategy"] = strategyUsed
	}
	chunks = postprocess.Enrich(chunks, len(chunks))

	st = stageValidating
	validation := postprocess.Validate(normalized, chunks, cfg.Tolerance)
	if !validation.IsValid && opts.strict {
		st = stageFailed
		return ChunkingResult{Chunks: chunks, Analysis: analysis, Warnings: warnings, StrategyUsed: strategyUsed, Validation: validation, Success: false},
			&DataLossError{Result: validation}
	}

	checkInvariants(chunks)
	st = stageDone
	_ = st

	return ChunkingResult{
		Chunks:       chunks,
		Analysis:     analysis,
		Warnings:     warnings,
		StrategyUsed: strategyUsed,
		Validation:   validation,
		Success:      true,
	}, nil
}

// selectAndApply picks a strategy and applies it, retrying with the next
// applicable strategy (by priority) if Apply fails (spec §4.13, mirroring
// the teacher's insert retry idiom). The fallback strategy's CanHandle is
// unconditional, so this loop always terminates.
func selectAndApply(normalized string, lines []string, analysis ContentAnalysis, cfg ChunkConfig, opts options) ([]Chunk, []string, string, error) {
	var warnings []string

	sel, selWarnings, err := strategy.Select(analysis, cfg, opts.selectionMode, opts.strategyOverride)
	warnings = append(warnings, selWarnings...)
	if err != nil {
		return nil, warnings, "", err
	}

	tried := map[string]bool{}
	for {
		tried[sel.Name()] = true
		in := strategy.Input{Text: normalized, Lines: lines, Analysis: analysis, Config: cfg}
		chunks, applyWarnings, applyErr := sel.Apply(in)
		warnings = append(warnings, applyWarnings...)
		if applyErr == nil {
			return chunks, warnings, sel.Name(), nil
		}
		warnings = append(warnings, fmt.Sprintf("strategy_retry:%s", sel.Name()))

		next := nextUntried(analysis, cfg, tried)
		if next == nil {
			return nil, warnings, "", &StrategyError{Candidates: strategyNames(), Code: "strategy_failed", Err: applyErr}
		}
		sel = next
	}
}

func nextUntried(analysis ContentAnalysis, cfg ChunkConfig, tried map[string]bool) strategy.Strategy {
	candidates := strategy.Registry()
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Priority() < candidates[j].Priority() })
	for _, s := range candidates {
		if !tried[s.Name()] && s.CanHandle(analysis, cfg) {
			return s
		}
	}
	return nil
}

func strategyNames() []string {
	var out []string
	for _, s := range strategy.Registry() {
		out = append(out, s.Name())
	}
	return out
}

func prependPreambleChunk(chunks []Chunk, info PreambleInfo) []Chunk {
	preambleChunk := Chunk{
		Content:   info.Content,
		StartLine: info.StartLine,
		EndLine:   info.EndLine,
		Metadata: map[string]any{
			"content_type":  ChunkTypePreamble,
			"preamble_type": string(info.Type),
		},
	}
	if len(info.MetadataFields) > 0 {
		preambleChunk.Metadata["preamble_fields"] = info.MetadataFields
	}
	return append([]Chunk{preambleChunk}, chunks...)
}

// checkInvariants enforces the universal properties every chunk sequence
// must satisfy before Chunk returns it (spec §8.1): non-empty chunks,
// monotonically non-decreasing line ranges, and valid metadata. A
// violation indicates an engine bug and is escalated via invariantPanic,
// not returned as an ordinary error (spec §9).
func checkInvariants(chunks []Chunk) {
	for i, c := range chunks {
		if strings.TrimSpace(c.Content) == "" {
			raise("empty_chunk", "chunk has no content", map[string]any{"index": i})
		}
		if c.StartLine > c.EndLine {
			raise("invalid_line_range", "start_line exceeds end_line", map[string]any{"index": i, "start": c.StartLine, "end": c.EndLine})
		}
		if i > 0 && c.StartLine < chunks[i-1].StartLine {
			raise("non_monotonic_order", "chunk sequence is not in source order", map[string]any{"index": i})
		}
		if c.Metadata == nil {
			raise("missing_metadata", "chunk has nil metadata", map[string]any{"index": i})
		}
	}
}

func raise(code, message string, context map[string]any) {
	panic(invariantPanic{Err: &ValidationError{Code: code, Message: message, Context: context}})
}
