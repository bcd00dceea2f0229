package postprocess

import (
	"regexp"
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/tokencount"
)

var (
	fenceMarker  = regexp.MustCompile("(^|\n)[ \t]*(```|~~~)")
	tableMarker  = regexp.MustCompile(`\|.*\|`)
	listMarker   = regexp.MustCompile(`(?m)^[ \t]*([-*+]|\d+\.)\s+`)
	urlMarker    = regexp.MustCompile(`https?://\S+`)
	sentenceStop = regexp.MustCompile(`[.!?](\s|$)`)
)

const previewMaxChars = 100

// Enrich fills in the positional, size, structural, content, and
// searchability metadata fields every Chunk carries in its final form
// (spec §4.11). It never overwrites a field a strategy or earlier stage
// already populated.
func Enrich(chunks []mdtypes.Chunk, totalChunks int) []mdtypes.Chunk {
	for i := range chunks {
		c := &chunks[i]
		if c.Metadata == nil {
			c.Metadata = map[string]any{}
		}
		setDefault(c.Metadata, "chunk_index", i)
		setDefault(c.Metadata, "total_chunks", totalChunks)
		setDefault(c.Metadata, "start_line", c.StartLine)
		setDefault(c.Metadata, "end_line", c.EndLine)
		setDefault(c.Metadata, "line_count", c.EndLine-c.StartLine+1)

		setDefault(c.Metadata, "size_chars", c.Size())
		setDefault(c.Metadata, "size_tokens", tokencount.Estimate(c.Content))

		setDefault(c.Metadata, "has_code", fenceMarker.MatchString(c.Content))
		setDefault(c.Metadata, "has_table", tableMarker.MatchString(c.Content))
		setDefault(c.Metadata, "has_list", listMarker.MatchString(c.Content))
		setDefault(c.Metadata, "has_url", urlMarker.MatchString(c.Content))

		if _, ok := c.Metadata["content_type"]; !ok {
			c.Metadata["content_type"] = inferContentType(c.Content)
		}
		if ct, _ := c.Metadata["content_type"].(string); ct == mdtypes.ChunkTypeCode {
			if lang, ok := c.Metadata["language"].(string); !ok || lang == "" {
				c.Metadata["language"] = detectLanguage(c.Content)
			}
		}

		setDefault(c.Metadata, "preview", preview(c.Content))
		setDefault(c.Metadata, "is_first", i == 0)
		setDefault(c.Metadata, "is_last", i == totalChunks-1)
	}
	return chunks
}

func setDefault(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}

func inferContentType(content string) string {
	switch {
	case fenceMarker.MatchString(content):
		return mdtypes.ChunkTypeCode
	case tableMarker.MatchString(content):
		return mdtypes.ChunkTypeTable
	case listMarker.MatchString(content):
		return mdtypes.ChunkTypeList
	default:
		return mdtypes.ChunkTypeText
	}
}

// languageHints maps characteristic tokens to a language name; detection
// is a best-effort heuristic only (spec §4.11: language detection never
// blocks chunking on failure).
var languageHints = []struct {
	pattern *regexp.Regexp
	lang    string
}{
	{regexp.MustCompile(`\bfunc\s+\w+\(`), "go"},
	{regexp.MustCompile(`\bdef\s+\w+\(`), "python"},
	{regexp.MustCompile(`\bfn\s+\w+\(`), "rust"},
	{regexp.MustCompile(`\b(const|let|var)\s+\w+\s*=`), "javascript"},
	{regexp.MustCompile(`\bpublic\s+(class|static)\b`), "java"},
	{regexp.MustCompile(`#include\s*<`), "c"},
}

func detectLanguage(content string) string {
	for _, h := range languageHints {
		if h.pattern.MatchString(content) {
			return h.lang
		}
	}
	return "unknown"
}

// preview returns the first sentence of content, truncated to
// previewMaxChars.
func preview(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}
	if loc := sentenceStop.FindStringIndex(trimmed); loc != nil {
		trimmed = trimmed[:loc[1]]
	}
	trimmed = strings.TrimSpace(trimmed)
	if len(trimmed) > previewMaxChars {
		trimmed = strings.TrimSpace(trimmed[:previewMaxChars])
	}
	return trimmed
}
