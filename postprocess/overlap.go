package postprocess

import (
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/parse"
)

// OverlapMode selects how overlap is surfaced to the caller (spec §4.10).
type OverlapMode int

// Recognized overlap modes.
const (
	// MetadataOverlap attaches the neighbor content as metadata only,
	// leaving Chunk.Content untouched. The default (spec §4.10).
	MetadataOverlap OverlapMode = iota
	// InlineOverlap additionally prepends/appends the neighbor text to
	// Chunk.Content.
	InlineOverlap
)

// Overlap attaches previous/next-chunk context to every chunk and skips a
// side with a warning when the extracted text would break a fence or push
// the chunk over MaxChunkSize (spec §4.10). A code or table neighbor gives
// no overlap. From any other neighbor the text is cut at the paragraph,
// line, or word boundary nearest the size limit (see extractTailBlock and
// extractHeadBlock), so it can hold part of a paragraph or list item; it
// is not extracted as whole blocks, and no side is skipped because the
// neighbor's first or last block is larger than the overlap size.
func Overlap(chunks []mdtypes.Chunk, cfg mdtypes.ChunkConfig, mode OverlapMode) ([]mdtypes.Chunk, []string) {
	if !cfg.EnableOverlap || len(chunks) < 2 {
		for i := range chunks {
			if chunks[i].Metadata == nil {
				chunks[i].Metadata = map[string]any{}
			}
			chunks[i].Metadata["has_overlap"] = false
		}
		return chunks, nil
	}

	original := make([]mdtypes.Chunk, len(chunks))
	copy(original, chunks)

	out := make([]mdtypes.Chunk, len(chunks))
	copy(out, chunks)

	var warnings []string

	for i := range out {
		meta := cloneMeta(out[i].Metadata)
		hasOverlap := false

		if i > 0 {
			prev := original[i-1]
			if text, skip := prevOverlapText(prev, out[i], cfg); skip != "" {
				warnings = append(warnings, skip)
			} else if text != "" {
				meta["overlap_size_prev"] = len(text)
				meta["previous_chunk_index"] = i - 1
				meta["previous_content"] = text
				hasOverlap = true
				if mode == InlineOverlap {
					out[i].Content = text + "\n\n" + out[i].Content
				}
			}
		}

		if i < len(out)-1 {
			next := original[i+1]
			if text, skip := nextOverlapText(next, out[i], cfg); skip != "" {
				warnings = append(warnings, skip)
			} else if text != "" {
				meta["overlap_size_next"] = len(text)
				meta["next_chunk_index"] = i + 1
				meta["next_content"] = text
				hasOverlap = true
				if mode == InlineOverlap {
					out[i].Content = out[i].Content + "\n\n" + text
				}
			}
		}

		meta["has_overlap"] = hasOverlap
		out[i].Metadata = meta
	}

	return out, warnings
}

func prevOverlapText(prev, cur mdtypes.Chunk, cfg mdtypes.ChunkConfig) (text string, skipWarning string) {
	if isAtomic(prev) {
		return "", ""
	}
	size := cfg.EffectiveOverlapSize(len(prev.Content))
	if size <= 0 {
		return "", ""
	}
	extracted := extractTailBlock(prev.Content, size)
	if !parse.FenceBalance(extracted) {
		return "", "overlap_skipped_fence"
	}
	if cur.Size()+len(extracted) > cfg.MaxChunkSize {
		return "", "overlap_skipped_oversize"
	}
	return extracted, ""
}

func nextOverlapText(next, cur mdtypes.Chunk, cfg mdtypes.ChunkConfig) (text string, skipWarning string) {
	if isAtomic(next) {
		return "", ""
	}
	size := cfg.EffectiveOverlapSize(len(next.Content))
	if size <= 0 {
		return "", ""
	}
	extracted := extractHeadBlock(next.Content, size)
	if !parse.FenceBalance(extracted) {
		return "", "overlap_skipped_fence"
	}
	if cur.Size()+len(extracted) > cfg.MaxChunkSize {
		return "", "overlap_skipped_oversize"
	}
	return extracted, ""
}

// extractTailBlock returns the suffix of s bounded by size, narrowed to
// start after the first paragraph, line, or word boundary inside that
// suffix. When the suffix holds no such boundary it is returned as is and
// may start mid-word.
func extractTailBlock(s string, size int) string {
	if size <= 0 {
		return ""
	}
	if size >= len(s) {
		return s
	}
	window := s[len(s)-size:]
	if idx := strings.Index(window, "\n\n"); idx >= 0 {
		return window[idx+2:]
	}
	if idx := strings.IndexByte(window, '\n'); idx >= 0 {
		return window[idx+1:]
	}
	if idx := strings.IndexByte(window, ' '); idx >= 0 {
		return window[idx+1:]
	}
	return window
}

// extractHeadBlock returns the prefix of s bounded by size, narrowed back
// to the nearest paragraph, line, or word boundary.
func extractHeadBlock(s string, size int) string {
	if size <= 0 {
		return ""
	}
	if size >= len(s) {
		return s
	}
	window := s[:size]
	if idx := strings.LastIndex(window, "\n\n"); idx >= 0 {
		return window[:idx]
	}
	if idx := strings.LastIndexByte(window, '\n'); idx >= 0 {
		return window[:idx]
	}
	if idx := strings.LastIndexByte(window, ' '); idx >= 0 {
		return window[:idx]
	}
	return window
}

func cloneMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}
