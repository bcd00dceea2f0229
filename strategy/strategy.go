// Package strategy implements the three chunking strategies (code-aware,
// structural, fallback) and the selector that picks among them (spec
// §4.5-§4.8). Spec §9 fixes the set as a closed, small tagged enum rather
// than an open plugin surface: Strategy is implemented by exactly three
// unexported types, registered once in Registry.
package strategy

import (
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
	"github.com/arjunmehta/mdchunk/parse"
)

// Input is the read-only context a strategy's Apply receives: the
// normalized document, its lines, and the analysis produced by package
// parse.
type Input struct {
	Text     string
	Lines    []string
	Analysis mdtypes.ContentAnalysis
	Config   mdtypes.ChunkConfig
}

// Strategy is the common capability set every chunking strategy
// implements (spec §4.5, §9).
type Strategy interface {
	// Name identifies the strategy in Chunk.metadata.strategy and in
	// StrategyError.Candidates.
	Name() string
	// Priority orders strategies for strict-mode selection; lower wins
	// (spec §4.5: code-aware=1, structural=2, fallback=3).
	Priority() int
	// CanHandle reports whether this strategy is applicable to the given
	// analysis and configuration.
	CanHandle(analysis mdtypes.ContentAnalysis, cfg mdtypes.ChunkConfig) bool
	// Quality scores how well-suited this strategy is to the analysis,
	// in [0,1], used by weighted-mode selection.
	Quality(analysis mdtypes.ContentAnalysis) float64
	// Apply produces the chunk sequence. The returned warnings are
	// non-fatal notices (e.g. "code_block_split"); err is non-nil only on
	// an unrecoverable internal failure (spec §7 StrategyFailed).
	Apply(in Input) ([]mdtypes.Chunk, []string, error)
}

// Registry returns the three strategies in priority order (code-aware,
// structural, fallback).
func Registry() []Strategy {
	return []Strategy{
		&codeAware{},
		&structural{},
		&fallback{},
	}
}

// splitParagraphs splits text on blank-line boundaries into paragraph
// units, the shared building block of the code-aware text segments (spec
// §4.6) and fallback splitting (spec §4.8). Structural section overflow
// uses splitParagraphsFenceAware instead.
func splitParagraphs(text string) []string {
	if text == "" {
		return nil
	}
	lines := textnorm.Lines(text)
	var paras []string
	var cur []string
	for _, l := range lines {
		if l == "" {
			if len(cur) > 0 {
				paras = append(paras, joinLines(cur))
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		paras = append(paras, joinLines(cur))
	}
	return paras
}

// splitParagraphsFenceAware is splitParagraphs's fence-respecting sibling:
// it walks lines[startLine-1:endLine] the same way, except any line inside
// a fenced block (per fences) is never treated as a paragraph boundary, and
// the whole block is emitted as a single unit. Structural section overflow
// (spec §4.7) uses this instead of splitParagraphs so that a fenced code
// block living inside an oversize section is never fragmented, honoring
// the same atomic code-block invariant as the other two strategies (spec
// §8.1 property 4).
func splitParagraphsFenceAware(lines []string, startLine, endLine int, fences []mdtypes.FencedBlock) []string {
	var units []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			units = append(units, joinLines(cur))
			cur = nil
		}
	}
	for i := startLine; i <= endLine; {
		if fb, ok := fenceAt(i, fences); ok {
			flush()
			blockEnd := fb.EndLine
			if blockEnd > endLine {
				blockEnd = endLine
			}
			units = append(units, textnorm.JoinRange(lines, fb.StartLine, blockEnd))
			i = blockEnd + 1
			continue
		}
		line := lines[i-1]
		if strings.TrimSpace(line) == "" {
			flush()
			i++
			continue
		}
		cur = append(cur, line)
		i++
	}
	flush()
	return units
}

// fenceAt returns the fenced block containing line, if any.
func fenceAt(line int, fences []mdtypes.FencedBlock) (mdtypes.FencedBlock, bool) {
	if !parse.InFencedBlock(line, fences) {
		return mdtypes.FencedBlock{}, false
	}
	for _, f := range fences {
		if line >= f.StartLine && line <= f.EndLine {
			return f, true
		}
	}
	return mdtypes.FencedBlock{}, false
}

func joinLines(lines []string) string {
	out := lines[0]
	for _, l := range lines[1:] {
		out += "\n" + l
	}
	return out
}

// packGreedy packs units (paragraphs, sentences) into size-bounded groups,
// starting a new group whenever appending the next unit would exceed max
// (spec §4.6 step 3, §4.8 step 2). Separator is inserted between units
// within a group.
func packGreedy(units []string, maxSize int, separator string) []string {
	var groups []string
	var cur string
	for _, u := range units {
		candidate := u
		if cur != "" {
			candidate = cur + separator + u
		}
		if cur != "" && len(candidate) > maxSize {
			groups = append(groups, cur)
			cur = u
			continue
		}
		cur = candidate
	}
	if cur != "" {
		groups = append(groups, cur)
	}
	return groups
}
