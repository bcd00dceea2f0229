// Package parse implements the leaf components of the chunking pipeline:
// the fence scanner, element detector, content analyzer, and preamble
// extractor (spec §4.1-§4.4). Each operates on already line-ending
// normalized text and line-indexed (1-based) positions.
package parse

import (
	"regexp"
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
)

// fenceOpenPattern matches a fence-open line: three-or-more backticks or
// tildes, optionally followed by an info string (spec §4.1).
var fenceOpenPattern = regexp.MustCompile("^([ \t]*)(`{3,}|~{3,})[ \t]*(\\S*)[ \t]*$")

// ScanFences locates fenced code-block boundaries, respecting nesting via
// fence-length-and-type rules (spec §4.1). warnings collects non-fatal
// "unclosed_fence" notices.
func ScanFences(lines []string) (blocks []mdtypes.FencedBlock, warnings []string) {
	i := 0
	for i < len(lines) {
		open := matchFenceOpen(lines[i])
		if open == nil {
			i++
			continue
		}

		block, nextIdx, warn := scanOneFence(lines, i, *open)
		blocks = append(blocks, block)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		i = nextIdx
	}
	return blocks, warnings
}

type fenceOpen struct {
	indent   int
	char     byte
	length   int
	language string
}

func matchFenceOpen(line string) *fenceOpen {
	m := fenceOpenPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	indentStr, fenceStr, info := m[1], m[2], m[3]
	return &fenceOpen{
		indent:   indentWidth(indentStr),
		char:     fenceStr[0],
		length:   len(fenceStr),
		language: info,
	}
}

// indentWidth counts tabs as occupying a single indentation column for the
// purposes of fence-indent comparisons (spec §4.1 edge case: "Tabs in
// indent count as indentation but do not affect fence length").
func indentWidth(s string) int {
	return len(s)
}

// scanOneFence scans forward from an opening fence at lines[startIdx] for
// its matching close, implementing the nesting rule: an inner candidate
// fence of the same character but shorter length is content, not a closer
// (spec §4.1, scenario D).
func scanOneFence(lines []string, startIdx int, open fenceOpen) (mdtypes.FencedBlock, int, string) {
	fenceType := mdtypes.FenceBacktick
	if open.char == '~' {
		fenceType = mdtypes.FenceTilde
	}

	for j := startIdx + 1; j < len(lines); j++ {
		close := matchFenceOpen(lines[j])
		if close == nil {
			continue
		}
		if close.char != open.char {
			continue
		}
		if close.length < open.length {
			// Shorter same-character fence nested inside: content, not a
			// closer.
			continue
		}
		if close.indent > open.indent {
			continue
		}
		warn := ""
		if close.language != "" {
			warn = "trailing_info_on_close_fence"
		}
		return mdtypes.FencedBlock{
			StartLine:    startIdx + 1,
			EndLine:      j + 1,
			FenceType:    fenceType,
			FenceLength:  open.length,
			Indent:       open.indent,
			Language:     normalizeLanguage(open.language),
			NestingLevel: 0,
		}, j + 1, warn
	}

	// No closing fence found: block runs to end-of-document.
	return mdtypes.FencedBlock{
		StartLine:    startIdx + 1,
		EndLine:      len(lines),
		FenceType:    fenceType,
		FenceLength:  open.length,
		Indent:       open.indent,
		Language:     normalizeLanguage(open.language),
		NestingLevel: 0,
		Unclosed:     true,
	}, len(lines), "unclosed_fence"
}

func normalizeLanguage(info string) string {
	return strings.TrimSpace(info)
}

// InFencedBlock reports whether the 1-indexed line is inside one of the
// given fenced blocks (inclusive of the fence lines themselves).
func InFencedBlock(line int, blocks []mdtypes.FencedBlock) bool {
	for _, b := range blocks {
		if line >= b.StartLine && line <= b.EndLine {
			return true
		}
	}
	return false
}

// FenceBalance reports whether text is fence-balanced: it returns false
// when scanning text leaves a fenced block unclosed, and true otherwise.
// Used by the overlap manager's fence-safety check (spec
// §4.10): re-running the scanner over a candidate slice and checking for
// an unterminated block is cheaper and more correct than a second regex.
func FenceBalance(text string) bool {
	lines := textnorm.Lines(textnorm.Normalize(text))
	blocks, _ := ScanFences(lines)
	for _, b := range blocks {
		if b.Unclosed {
			return false
		}
	}
	return true
}
