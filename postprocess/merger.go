// Package postprocess implements the pipeline stages that run after a
// strategy produces its initial chunk sequence: merging undersized
// chunks, attaching overlap, enriching metadata, and validating
// completeness (spec §4.9-§4.12).
package postprocess

import (
	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

// Merge scans left-to-right combining any chunk below MinChunkSize with
// an adjacent non-atomic neighbor, provided the combined size still fits
// MaxChunkSize and the merge does not cross a protected section boundary
// (spec §4.9).
func Merge(chunks []mdtypes.Chunk, cfg mdtypes.ChunkConfig) ([]mdtypes.Chunk, []string) {
	if len(chunks) == 0 {
		return chunks, nil
	}

	var out []mdtypes.Chunk
	var warnings []string

	for i := 0; i < len(chunks); i++ {
		c := chunks[i]
		if isAtomic(c) || c.Size() >= cfg.MinChunkSize {
			out = append(out, c)
			continue
		}

		if i+1 < len(chunks) && canMerge(c, chunks[i+1], cfg) {
			out = append(out, combine(c, chunks[i+1]))
			i++
			continue
		}
		if len(out) > 0 && canMerge(out[len(out)-1], c, cfg) {
			out[len(out)-1] = combine(out[len(out)-1], c)
			continue
		}

		out = append(out, c)
		warnings = append(warnings, "undersized_chunk")
	}

	reindex(out)
	return out, warnings
}

func isAtomic(c mdtypes.Chunk) bool {
	switch c.Metadata["content_type"] {
	case mdtypes.ChunkTypeCode, mdtypes.ChunkTypeTable:
		return true
	}
	return false
}

// canMerge reports whether a and b (adjacent, a before b) may be combined
// without crossing a respected section boundary or an atomic block.
func canMerge(a, b mdtypes.Chunk, cfg mdtypes.ChunkConfig) bool {
	if isAtomic(a) || isAtomic(b) {
		return false
	}
	if a.Size()+b.Size()+2 > cfg.MaxChunkSize {
		return false
	}

	pathA, _ := a.Metadata["section_path"].(string)
	pathB, _ := b.Metadata["section_path"].(string)
	if pathA != pathB {
		if level, ok := a.Metadata["header_level"].(int); ok && level <= cfg.RespectHeaderLevel {
			return false
		}
		if level, ok := b.Metadata["header_level"].(int); ok && level <= cfg.RespectHeaderLevel {
			return false
		}
	}
	return true
}

func combine(a, b mdtypes.Chunk) mdtypes.Chunk {
	meta := make(map[string]any, len(b.Metadata))
	for k, v := range b.Metadata {
		meta[k] = v
	}
	meta["merged"] = true
	return mdtypes.Chunk{
		Content:   a.Content + "\n\n" + b.Content,
		StartLine: a.StartLine,
		EndLine:   b.EndLine,
		Metadata:  meta,
	}
}

func reindex(chunks []mdtypes.Chunk) {
	for i := range chunks {
		chunks[i].Metadata["chunk_index"] = i
		chunks[i].Metadata["total_chunks"] = len(chunks)
	}
}
