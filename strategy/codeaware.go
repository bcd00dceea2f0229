package strategy

import (
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
)

// codeAware segments a document into alternating text and code-block
// regions, keeping every fenced block atomic (spec §4.6).
type codeAware struct{}

func (codeAware) Name() string { return "code_aware" }
func (codeAware) Priority() int { return 1 }

func (codeAware) CanHandle(analysis mdtypes.ContentAnalysis, cfg mdtypes.ChunkConfig) bool {
	return analysis.CodeRatio >= cfg.CodeRatioThreshold && analysis.CodeBlockCount >= cfg.MinCodeBlocks
}

func (codeAware) Quality(analysis mdtypes.ContentAnalysis) float64 {
	if analysis.CodeBlockCount == 0 {
		return 0
	}
	return analysis.CodeRatio
}

// segment is one alternating text-or-code region of the document, in
// source order.
type segment struct {
	isCode bool
	text   string
	start  int
	end    int
	block  mdtypes.FencedBlock
}

func (s codeAware) Apply(in Input) ([]mdtypes.Chunk, []string, error) {
	segments := buildSegments(in.Lines, in.Analysis.FencedBlocks)

	var chunks []mdtypes.Chunk
	var warnings []string

	for _, seg := range segments {
		if seg.isCode {
			c, w := emitAtomicCode(seg, in.Config)
			chunks = append(chunks, c...)
			warnings = append(warnings, w...)
			continue
		}
		chunks = append(chunks, s.emitTextSegment(seg, in.Config)...)
	}

	chunks, mergeWarnings := mergeUndersizedText(chunks, in.Config)
	warnings = append(warnings, mergeWarnings...)

	for i := range chunks {
		chunks[i].Metadata["chunk_index"] = i
		chunks[i].Metadata["total_chunks"] = len(chunks)
	}

	return chunks, warnings, nil
}

// buildSegments walks the line range splitting it into alternating
// non-code and code segments bounded by the fenced-block list.
func buildSegments(lines []string, fences []mdtypes.FencedBlock) []segment {
	var segs []segment
	cursor := 1
	for _, fb := range fences {
		if fb.StartLine > cursor {
			segs = append(segs, segment{
				isCode: false,
				text:   textnorm.JoinRange(lines, cursor, fb.StartLine-1),
				start:  cursor,
				end:    fb.StartLine - 1,
			})
		}
		segs = append(segs, segment{
			isCode: true,
			text:   textnorm.JoinRange(lines, fb.StartLine, fb.EndLine),
			start:  fb.StartLine,
			end:    fb.EndLine,
			block:  fb,
		})
		cursor = fb.EndLine + 1
	}
	if cursor <= len(lines) {
		segs = append(segs, segment{
			isCode: false,
			text:   textnorm.JoinRange(lines, cursor, len(lines)),
			start:  cursor,
			end:    len(lines),
		})
	}
	return segs
}

// emitAtomicCode emits a fenced code block as a single atomic chunk,
// falling back to a line-boundary split with a warning only when the
// block exceeds MaxChunkSize and oversize is disallowed (spec §4.6). It
// is shared by the code-aware and fallback strategies, since atomic
// code-block preservation is a universal invariant (spec §8.1 property 4),
// not a code-aware-only behavior. The structural strategy builds its code
// chunks in splitOverflow instead.
func emitAtomicCode(seg segment, cfg mdtypes.ChunkConfig) ([]mdtypes.Chunk, []string) {
	language := seg.block.Language
	if language == "" {
		language = "unknown"
	}
	meta := map[string]any{
		"content_type":     mdtypes.ChunkTypeCode,
		"language":         language,
		"code_block_count": 1,
		"has_imports":      hasImports(seg.text, seg.block.Language),
		"has_comments":     hasComments(seg.text, seg.block.Language),
	}

	if len(seg.text) <= cfg.MaxChunkSize || cfg.AllowOversize {
		var warnings []string
		if len(seg.text) > cfg.MaxChunkSize {
			meta["oversize_reason"] = "code_block_atomicity"
			meta["allow_oversize"] = true
			warnings = append(warnings, "oversize_chunk:code_block_atomicity")
		}
		return []mdtypes.Chunk{{
			Content: seg.text, StartLine: seg.start, EndLine: seg.end, Metadata: meta,
		}}, warnings
	}

	// Oversize disallowed: split on line boundaries, which breaks the
	// block's atomicity and is always flagged.
	lines := textnorm.Lines(seg.text)
	var chunks []mdtypes.Chunk
	cur := seg.start
	var curLines []string
	flush := func(endLine int) {
		if len(curLines) == 0 {
			return
		}
		m := cloneMeta(meta)
		chunks = append(chunks, mdtypes.Chunk{
			Content: strings.Join(curLines, "\n"), StartLine: cur, EndLine: endLine, Metadata: m,
		})
		curLines = nil
	}
	for i, l := range lines {
		candidate := append(append([]string{}, curLines...), l)
		if len(curLines) > 0 && len(strings.Join(candidate, "\n")) > cfg.MaxChunkSize {
			flush(seg.start + i - 1)
			cur = seg.start + i
		}
		curLines = append(curLines, l)
	}
	flush(seg.end)
	return chunks, []string{"code_block_split"}
}

func (codeAware) emitTextSegment(seg segment, cfg mdtypes.ChunkConfig) []mdtypes.Chunk {
	paras := splitParagraphs(seg.text)
	if len(paras) == 0 {
		return nil
	}
	groups := packGreedy(paras, cfg.MaxChunkSize, "\n\n")

	var chunks []mdtypes.Chunk
	cursor := seg.start
	for _, g := range groups {
		lineCount := strings.Count(g, "\n") + 1
		end := cursor + lineCount - 1
		chunks = append(chunks, mdtypes.Chunk{
			Content:   g,
			StartLine: cursor,
			EndLine:   end,
			Metadata: map[string]any{
				"content_type": mdtypes.ChunkTypeText,
			},
		})
		cursor = end + 1
	}
	return chunks
}

// mergeUndersizedText merges a too-small text chunk into the chunk that
// follows it, provided the neighbor is not an atomic code chunk and the
// combined size still fits (spec §4.6 step 5).
func mergeUndersizedText(chunks []mdtypes.Chunk, cfg mdtypes.ChunkConfig) ([]mdtypes.Chunk, []string) {
	var out []mdtypes.Chunk
	var warnings []string
	for i := 0; i < len(chunks); i++ {
		c := chunks[i]
		isCode := c.Metadata["content_type"] == mdtypes.ChunkTypeCode
		if !isCode && c.Size() < cfg.MinChunkSize && i+1 < len(chunks) {
			next := chunks[i+1]
			nextIsCode := next.Metadata["content_type"] == mdtypes.ChunkTypeCode
			combined := c.Size() + len(next.Content) + 2
			if !nextIsCode && combined <= cfg.MaxChunkSize {
				merged := mdtypes.Chunk{
					Content:   c.Content + "\n\n" + next.Content,
					StartLine: c.StartLine,
					EndLine:   next.EndLine,
					Metadata:  cloneMeta(next.Metadata),
				}
				out = append(out, merged)
				i++
				continue
			}
		}
		out = append(out, c)
	}
	return out, warnings
}

func cloneMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var importKeywords = map[string][]string{
	"go":         {"import "},
	"python":     {"import ", "from "},
	"javascript": {"import ", "require("},
	"typescript": {"import "},
	"java":       {"import "},
	"rust":       {"use "},
	"c":          {"#include"},
	"cpp":        {"#include"},
}

func hasImports(text, language string) bool {
	kws, ok := importKeywords[strings.ToLower(language)]
	if !ok {
		kws = []string{"import ", "#include", "use "}
	}
	for _, kw := range kws {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var commentMarkers = []string{"//", "#", "/*", "--", "<!--"}

func hasComments(text, _ string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, m := range commentMarkers {
			if strings.HasPrefix(trimmed, m) {
				return true
			}
		}
	}
	return false
}
