package parse

import (
	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
	"github.com/arjunmehta/mdchunk/internal/tokencount"
)

// Analyze runs the fence scanner, element detector, and content
// classifier over normalized text and produces a ContentAnalysis (spec
// §4.3). It does not extract the preamble; callers that need one call
// ExtractPreamble separately (spec §4.4), since preamble extraction
// consumes the header list this function also returns as part of the
// analysis's Headers field.
func Analyze(normalized string) (mdtypes.ContentAnalysis, []string) {
	lines := textnorm.Lines(normalized)

	fences, warnings := ScanFences(lines)
	headers := DetectHeaders(lines, fences)
	tables := DetectTables(lines, fences)
	lists, listWarnings := DetectLists(lines, fences)
	urlRuns := DetectURLRuns(lines)
	warnings = append(warnings, listWarnings...)
	warnings = append(warnings, ValidateAgainstAST([]byte(normalized), len(headers), len(tables))...)

	analysis := mdtypes.ContentAnalysis{
		TotalChars:         len(normalized),
		TotalLines:         len(lines),
		FencedBlocks:       fences,
		Headers:            headers,
		Tables:             tables,
		Lists:              lists,
		URLRuns:            urlRuns,
		CodeBlockCount:     len(fences),
		ListCount:          len(lists),
		TableCount:         len(tables),
		HeaderCountByLevel: headerCountByLevel(headers),
	}

	codeChars, tableChars, listChars, textChars := classifyChars(lines, fences, tables, lists)
	total := codeChars + tableChars + listChars + textChars
	if total == 0 {
		total = 1
	}
	analysis.CodeRatio = float64(codeChars) / float64(total)
	analysis.TableRatio = float64(tableChars) / float64(total)
	analysis.ListRatio = float64(listChars) / float64(total)
	analysis.TextRatio = float64(textChars) / float64(total)

	analysis.ContentType = classify(analysis)
	analysis.HasMixedContent = analysis.ContentType == mdtypes.ContentMixed
	analysis.ComplexityScore = complexityScore(analysis)
	analysis.TokenEstimate = tokencount.Estimate(normalized)

	return analysis, warnings
}

func headerCountByLevel(headers []mdtypes.Header) map[int]int {
	m := make(map[int]int)
	for _, h := range headers {
		m[h.Level]++
	}
	return m
}

// classifyChars assigns each line's character count to exactly one of
// code/table/list/text, in that priority order, and sums per class (spec
// §4.3: "Ratios are computed as the fraction of characters... belonging to
// each element class").
func classifyChars(lines []string, fences []mdtypes.FencedBlock, tables []mdtypes.TableBlock, lists []mdtypes.ListBlock) (code, table, list, text int) {
	for i, line := range lines {
		n := i + 1
		size := len(line) + 1
		switch {
		case InFencedBlock(n, fences):
			code += size
		case inTable(n, tables):
			table += size
		case inList(n, lists):
			list += size
		default:
			text += size
		}
	}
	return code, table, list, text
}

func inTable(line int, tables []mdtypes.TableBlock) bool {
	for _, t := range tables {
		if line >= t.StartLine && line <= t.EndLine {
			return true
		}
	}
	return false
}

func inList(line int, lists []mdtypes.ListBlock) bool {
	for _, l := range lists {
		if line >= l.StartLine && line <= l.EndLine {
			return true
		}
	}
	return false
}

// classify applies the first-match-wins content-type decision tree (spec
// §4.3). The structural rule compares against
// mdtypes.DefaultStructuralMinHeaders; a caller's
// ChunkConfig.StructuralMinHeaders does not reach this function.
func classify(a mdtypes.ContentAnalysis) mdtypes.ContentType {
	switch {
	case a.CodeRatio >= 0.7 && a.CodeBlockCount >= 3:
		return mdtypes.ContentCodeHeavy
	case a.ListRatio >= 0.6 || a.ListCount >= 5:
		return mdtypes.ContentListHeavy
	case a.TableRatio >= 0.4 || a.TableCount >= 3:
		return mdtypes.ContentTableHeavy
	}

	above := 0
	for _, r := range []float64{a.CodeRatio, a.ListRatio, a.TableRatio, a.TextRatio} {
		if r >= 0.1 {
			above++
		}
	}
	if above >= 3 {
		return mdtypes.ContentMixed
	}

	maxHeaders := 0
	for _, c := range a.HeaderCountByLevel {
		if c > maxHeaders {
			maxHeaders = c
		}
	}
	if maxHeaders >= mdtypes.DefaultStructuralMinHeaders {
		return mdtypes.ContentStructural
	}
	return mdtypes.ContentPlain
}

// complexityScore computes the weighted combination from spec §4.3,
// clamped to [0,1].
func complexityScore(a mdtypes.ContentAnalysis) float64 {
	headerCount := 0
	for _, c := range a.HeaderCountByLevel {
		headerCount += c
	}
	denom := float64(a.TotalLines) / 10
	if denom < 1 {
		denom = 1
	}
	mixedIndicator := 0.0
	if a.HasMixedContent {
		mixedIndicator = 1.0
	}
	score := 0.3*a.CodeRatio + 0.2*a.ListRatio + 0.15*a.TableRatio +
		0.15*(float64(headerCount)/denom) + 0.2*mixedIndicator
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
