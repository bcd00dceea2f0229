package postprocess

import (
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
)

// maxAcceptableGapLines bounds a single missing run regardless of
// tolerance (spec §4.12: "a contiguous gap of more than 10 lines is
// always invalid, independent of the configured tolerance").
const maxAcceptableGapLines = 10

// Validate checks that the chunk sequence accounts for the input's
// significant content (spec §4.12). tolerance is the fraction of
// significant characters that may go missing before coverage fails.
func Validate(input string, chunks []mdtypes.Chunk, tolerance float64) mdtypes.ValidationResult {
	lines := textnorm.Lines(textnorm.Normalize(input))
	covered := make([]bool, len(lines)+1) // 1-indexed

	outputChars := 0
	for _, c := range chunks {
		outputChars += c.Size()
		for l := c.StartLine; l <= c.EndLine && l <= len(lines); l++ {
			if l >= 1 {
				covered[l] = true
			}
		}
	}

	var missingBlocks []mdtypes.MissingContentBlock
	var warnings []string
	totalSignificant := textnorm.CountSignificantChars(input)
	missingSignificant := 0

	i := 1
	for i <= len(lines) {
		if covered[i] || strings.TrimSpace(lines[i-1]) == "" {
			i++
			continue
		}
		start := i
		for i <= len(lines) && !covered[i] && strings.TrimSpace(lines[i-1]) != "" {
			i++
		}
		end := i - 1
		blockText := textnorm.JoinRange(lines, start, end)
		sig := textnorm.CountSignificantChars(blockText)
		missingSignificant += sig

		preview := blockText
		if len(preview) > previewMaxChars {
			preview = preview[:previewMaxChars]
		}
		missingBlocks = append(missingBlocks, mdtypes.MissingContentBlock{
			StartLine:      start,
			EndLine:        end,
			ContentPreview: preview,
			SizeChars:      len(blockText),
		})

		if end-start+1 > maxAcceptableGapLines {
			warnings = append(warnings, "large_coverage_gap")
		}
	}

	coverage := 1.0
	if totalSignificant > 0 {
		coverage = 1 - float64(missingSignificant)/float64(totalSignificant)
	}

	isValid := coverage >= 1-tolerance
	for _, w := range warnings {
		if w == "large_coverage_gap" {
			isValid = false
		}
	}

	return mdtypes.ValidationResult{
		IsValid:       isValid,
		InputChars:    len(input),
		OutputChars:   outputChars,
		MissingChars:  missingSignificant,
		CharCoverage:  coverage,
		MissingBlocks: missingBlocks,
		Warnings:      warnings,
	}
}
