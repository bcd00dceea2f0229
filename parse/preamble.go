package parse

import (
	"regexp"
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
)

const preambleMinChars = 50

var metadataLinePattern = regexp.MustCompile(`^\s*\w+\s*:\s*\S+`)

var summaryPrefixes = []string{"tl;dr", "summary", "abstract", "synopsis"}

var introKeywords = []string{"introduction", "overview", "about", "welcome"}

// ExtractPreamble isolates the content before the first header and
// classifies it (spec §4.4). It returns nil if there are no headers, the
// preamble is shorter than preambleMinChars, or it has fewer than two
// lines.
func ExtractPreamble(normalized string, headers []mdtypes.Header) *mdtypes.PreambleInfo {
	lines := textnorm.Lines(normalized)
	if len(headers) == 0 || len(lines) == 0 {
		return nil
	}

	endLine := headers[0].Line - 1
	if endLine < 1 {
		return nil
	}

	content := textnorm.JoinRange(lines, 1, endLine)
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < preambleMinChars {
		return nil
	}
	preambleLines := textnorm.Lines(content)
	if len(preambleLines) < 2 {
		return nil
	}

	info := &mdtypes.PreambleInfo{
		StartLine: 1,
		EndLine:   endLine,
		Content:   content,
	}
	info.Type, info.MetadataFields = classifyPreamble(preambleLines)
	return info
}

func classifyPreamble(lines []string) (mdtypes.PreambleType, map[string]string) {
	if fields, ok := extractMetadataFields(lines); ok {
		return mdtypes.PreambleMetadata, fields
	}

	firstPara := firstParagraph(lines)
	lowerFirst := strings.ToLower(strings.TrimSpace(firstPara))
	for _, p := range summaryPrefixes {
		if strings.HasPrefix(lowerFirst, p) {
			return mdtypes.PreambleSummary, nil
		}
	}

	lowerAll := strings.ToLower(strings.Join(lines, "\n"))
	for _, kw := range introKeywords {
		if strings.Contains(lowerAll, kw) {
			return mdtypes.PreambleIntroduction, nil
		}
	}

	return mdtypes.PreambleGeneral, nil
}

// extractMetadataFields classifies the preamble as metadata when at least
// two of the leading lines look like "key: value" pairs (spec §4.4), and
// extracts them.
func extractMetadataFields(lines []string) (map[string]string, bool) {
	matches := 0
	fields := make(map[string]string)
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if !metadataLinePattern.MatchString(l) {
			break
		}
		matches++
		parts := strings.SplitN(l, ":", 2)
		key := strings.TrimSpace(parts[0])
		val := ""
		if len(parts) > 1 {
			val = strings.TrimSpace(parts[1])
		}
		fields[key] = val
	}
	if matches >= 2 {
		return fields, true
	}
	return nil, false
}

func firstParagraph(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if b.Len() > 0 {
				break
			}
			continue
		}
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
