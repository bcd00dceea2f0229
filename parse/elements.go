package parse

import (
	"regexp"
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

var (
	atxPattern        = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	setextH1Pattern   = regexp.MustCompile(`^=+\s*$`)
	setextH2Pattern   = regexp.MustCompile(`^-+\s*$`)
	tableRowPattern   = regexp.MustCompile(`^\s*\|?.*\|.*\|?\s*$`)
	tableSepCellRegex = regexp.MustCompile(`^:?-{3,}:?$`)
	unorderedPattern  = regexp.MustCompile(`^(\s*)([-*+])\s+`)
	orderedPattern    = regexp.MustCompile(`^(\s*)(\d+)\.\s+`)
	taskPattern       = regexp.MustCompile(`^(\s*)([-*+])\s+\[([ xX])\]\s+`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
)

// DetectHeaders finds ATX and Setext headings, skipping any line inside a
// fenced code block (spec §4.2: "Headers inside fenced code blocks are NOT
// headers").
func DetectHeaders(lines []string, fences []mdtypes.FencedBlock) []mdtypes.Header {
	var headers []mdtypes.Header
	offsets := byteOffsets(lines)

	for i := 0; i < len(lines); i++ {
		lineNum := i + 1
		if InFencedBlock(lineNum, fences) {
			continue
		}

		if m := atxPattern.FindStringSubmatch(lines[i]); m != nil {
			headers = append(headers, mdtypes.Header{
				Line:       lineNum,
				Level:      len(m[1]),
				Text:       strings.TrimSpace(m[2]),
				ByteOffset: offsets[i],
			})
			continue
		}

		if i+1 < len(lines) && strings.TrimSpace(lines[i]) != "" && !isListMarker(lines[i]) {
			nextLine := lines[i+1]
			if InFencedBlock(i+2, fences) {
				continue
			}
			switch {
			case setextH1Pattern.MatchString(nextLine):
				headers = append(headers, mdtypes.Header{
					Line: lineNum, Level: 1, Text: strings.TrimSpace(lines[i]), ByteOffset: offsets[i],
				})
			case setextH2Pattern.MatchString(nextLine):
				headers = append(headers, mdtypes.Header{
					Line: lineNum, Level: 2, Text: strings.TrimSpace(lines[i]), ByteOffset: offsets[i],
				})
			}
		}
	}
	return headers
}

func isListMarker(line string) bool {
	return unorderedPattern.MatchString(line) || orderedPattern.MatchString(line) || taskPattern.MatchString(line)
}

func byteOffsets(lines []string) []int {
	offsets := make([]int, len(lines))
	pos := 0
	for i, l := range lines {
		offsets[i] = pos
		pos += len(l) + 1
	}
	return offsets
}

// DetectTables finds GFM-style pipe tables: a header row, a separator row
// of dashes/colons with matching column count, followed by at least one
// data row (spec §4.2). Tables without a data row are rejected.
func DetectTables(lines []string, fences []mdtypes.FencedBlock) []mdtypes.TableBlock {
	var tables []mdtypes.TableBlock

	i := 0
	for i < len(lines)-1 {
		lineNum := i + 1
		if InFencedBlock(lineNum, fences) || !looksLikeTableRow(lines[i]) {
			i++
			continue
		}

		headerCells := splitTableRow(lines[i])
		sepCells, ok := parseSeparatorRow(lines[i+1])
		if !ok || len(sepCells) != len(headerCells) || InFencedBlock(i+2, fences) {
			i++
			continue
		}

		dataStart := i + 2
		dataEnd := dataStart
		for dataEnd < len(lines) && looksLikeTableRow(lines[dataEnd]) && !InFencedBlock(dataEnd+1, fences) {
			dataEnd++
		}

		dataRowCount := dataEnd - dataStart
		if dataRowCount < 1 {
			i++
			continue
		}

		tables = append(tables, mdtypes.TableBlock{
			StartLine:        lineNum,
			EndLine:          dataEnd,
			ColumnCount:      len(headerCells),
			HeaderRowLine:    lineNum,
			SeparatorRowLine: i + 2,
			DataRowCount:     dataRowCount,
			Alignments:       sepCells,
		})
		i = dataEnd
	}
	return tables
}

func looksLikeTableRow(line string) bool {
	return strings.Contains(strings.TrimSpace(line), "|")
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	return strings.Split(trimmed, "|")
}

func parseSeparatorRow(line string) ([]mdtypes.Alignment, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]mdtypes.Alignment, 0, len(cells))
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if !tableSepCellRegex.MatchString(c) {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		switch {
		case left && right:
			aligns = append(aligns, mdtypes.AlignCenter)
		case left:
			aligns = append(aligns, mdtypes.AlignLeft)
		case right:
			aligns = append(aligns, mdtypes.AlignRight)
		default:
			aligns = append(aligns, mdtypes.AlignNone)
		}
	}
	return aligns, true
}

// DetectLists finds contiguous list regions and classifies their marker
// style, item count, and nesting depth (spec §4.2). Nesting level is
// fixed at two spaces per level per spec §9's resolution of the source's
// ambiguous convention; indentation that mixes tabs and spaces emits a
// warning.
func DetectLists(lines []string, fences []mdtypes.FencedBlock) (blocks []mdtypes.ListBlock, warnings []string) {
	i := 0
	for i < len(lines) {
		lineNum := i + 1
		if InFencedBlock(lineNum, fences) || !isListMarker(lines[i]) {
			i++
			continue
		}

		start := i
		itemCount := 0
		maxDepth := 1
		sawOrdered, sawUnordered, sawTask := false, false, false
		mixedIndent := false

		for i < len(lines) {
			ln := i + 1
			if InFencedBlock(ln, fences) {
				break
			}
			line := lines[i]
			trimmed := strings.TrimRight(line, " \t")
			if trimmed == "" {
				// A single blank line may separate list items; two in a
				// row ends the list region.
				if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
					break
				}
				i++
				continue
			}

			if isListMarker(line) {
				itemCount++
				indent := leadingIndent(line)
				if strings.Contains(indent, "\t") && strings.Contains(indent, " ") {
					mixedIndent = true
				}
				depth := len(indent)/2 + 1
				if depth > maxDepth {
					maxDepth = depth
				}
				switch {
				case taskPattern.MatchString(line):
					sawTask = true
				case orderedPattern.MatchString(line):
					sawOrdered = true
				case unorderedPattern.MatchString(line):
					sawUnordered = true
				}
				i++
				continue
			}

			// Continuation line: belongs to the list if indented at least
			// two spaces relative to a list marker; otherwise the list
			// region has ended.
			if len(leadingIndent(line)) >= 2 {
				i++
				continue
			}
			break
		}

		listType := mdtypes.ListUnordered
		switch {
		case sawTask:
			listType = mdtypes.ListTask
		case sawOrdered && sawUnordered:
			listType = mdtypes.ListMixed
		case sawOrdered:
			listType = mdtypes.ListOrdered
		}

		blocks = append(blocks, mdtypes.ListBlock{
			StartLine:       start + 1,
			EndLine:         i,
			ListType:        listType,
			ItemCount:       itemCount,
			MaxNestingDepth: maxDepth,
		})
		if mixedIndent {
			warnings = append(warnings, "mixed_tab_space_indent")
		}
	}
	return blocks, warnings
}

func leadingIndent(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// DetectURLRuns groups three-or-more consecutive lines each containing a
// URL into a URLRun (spec §4.2), so downstream components preserve the
// pool as a unit where possible.
func DetectURLRuns(lines []string) []mdtypes.URLRun {
	var runs []mdtypes.URLRun
	i := 0
	for i < len(lines) {
		if !urlPattern.MatchString(lines[i]) {
			i++
			continue
		}
		start := i
		for i < len(lines) && urlPattern.MatchString(lines[i]) {
			i++
		}
		if i-start >= 3 {
			runs = append(runs, mdtypes.URLRun{StartLine: start + 1, EndLine: i})
		}
	}
	return runs
}
