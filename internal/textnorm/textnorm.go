// Package textnorm holds the line-ending normalization and line-indexing
// helpers shared by the parser, strategies, and post-processing pipeline,
// so every component agrees on what "line N" means.
package textnorm

import "strings"

// Normalize rewrites CRLF and bare CR line endings to LF, per spec §3.2:
// "Let S be input text after line-ending normalization (CRLF/CR -> LF)."
func Normalize(s string) string {
	if !strings.ContainsAny(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// Lines splits already-normalized text into its constituent lines without
// their trailing newline. A trailing newline in the input does not produce
// a spurious empty final line, matching how editors report line counts.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// LineOffsets returns, for a normalized string split into lines, the byte
// offset at which each 1-indexed line begins. offsets[0] is unused (line
// numbers are 1-indexed); offsets[i] is the start of line i.
func LineOffsets(lines []string) []int {
	offsets := make([]int, len(lines)+1)
	pos := 0
	for i, l := range lines {
		offsets[i+1] = pos
		pos += len(l) + 1 // account for the stripped '\n'
	}
	return offsets
}

// JoinRange joins lines[startLine-1:endLine] (1-indexed, inclusive) back
// into a single string separated by '\n'.
func JoinRange(lines []string, startLine, endLine int) string {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		return ""
	}
	return strings.Join(lines[startLine-1:endLine], "\n")
}

// CountSignificantChars counts non-whitespace characters, used by the
// completeness validator's coverage ratio (spec §3.2 invariant 3, §4.12).
func CountSignificantChars(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			n++
		}
	}
	return n
}
