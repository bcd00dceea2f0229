package strategy

import (
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
	"github.com/arjunmehta/mdchunk/internal/textnorm"
)

// structural chunks a document along its header hierarchy, one chunk per
// section unless a section is too large or its siblings are small enough
// to combine (spec §4.7).
type structural struct{}

func (structural) Name() string { return "structural" }
func (structural) Priority() int { return 2 }

// CanHandle requires only that the document have at least one header to
// chunk along. The analyzer's "structural" ContentType classification
// (spec §4.3) uses the fixed mdtypes.DefaultStructuralMinHeaders
// threshold instead; cfg.StructuralMinHeaders is read by neither. A
// single-header document is still structurally chunkable even when it is
// too sparse to be classified structural overall (spec §8.3 scenario A:
// one H1 still selects the structural strategy).
func (structural) CanHandle(analysis mdtypes.ContentAnalysis, _ mdtypes.ChunkConfig) bool {
	total := 0
	for _, c := range analysis.HeaderCountByLevel {
		total += c
	}
	return total >= 1
}

func (structural) Quality(analysis mdtypes.ContentAnalysis) float64 {
	if analysis.ContentType == mdtypes.ContentStructural {
		return 1
	}
	total := 0
	for _, c := range analysis.HeaderCountByLevel {
		total += c
	}
	if total == 0 {
		return 0
	}
	q := float64(total) / float64(analysis.TotalLines/10+1)
	if q > 1 {
		q = 1
	}
	return q
}

// node is an entry in the section arena: index-based tree links rather
// than pointers, so the whole tree is a flat, serializable slice (spec
// §9's resolution for the section-tree data structure).
type node struct {
	header   mdtypes.Header
	start    int // first content line (the header line itself)
	end      int // last line belonging to this section and its descendants
	parent   int // -1 for the synthetic root
	children []int
}

func (s structural) Apply(in Input) ([]mdtypes.Chunk, []string, error) {
	nodes := buildSectionTree(in.Analysis.Headers, len(in.Lines))
	var warnings []string

	var chunks []mdtypes.Chunk
	if len(nodes) == 1 {
		// No headers at all: shouldn't happen given CanHandle, but guard.
		chunks, warnings = s.emitLeaf(nodes, 0, in, nil)
	} else {
		root := nodes[0]
		for _, childIdx := range root.children {
			c, w := s.emitSection(nodes, childIdx, in, nil)
			chunks = append(chunks, c...)
			warnings = append(warnings, w...)
		}
	}

	chunks = mergeSiblings(chunks, in.Config)

	for i := range chunks {
		chunks[i].Metadata["chunk_index"] = i
		chunks[i].Metadata["total_chunks"] = len(chunks)
	}

	return chunks, warnings, nil
}

// buildSectionTree arranges headers into a tree keyed by level, with a
// synthetic root at index 0 covering the whole document.
func buildSectionTree(headers []mdtypes.Header, totalLines int) []node {
	nodes := []node{{header: mdtypes.Header{Level: 0}, start: 1, end: totalLines, parent: -1}}
	stack := []int{0}

	for _, h := range headers {
		for len(stack) > 1 && nodes[stack[len(stack)-1]].header.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		idx := len(nodes)
		nodes = append(nodes, node{header: h, start: h.Line, end: totalLines, parent: parent})
		nodes[parent].children = append(nodes[parent].children, idx)
		stack = append(stack, idx)
	}

	// Resolve each node's end line: one before its next sibling-or-uncle's
	// start, or the document end.
	for i := 1; i < len(nodes); i++ {
		nodes[i].end = sectionEnd(nodes, i, totalLines)
	}
	return nodes
}

func sectionEnd(nodes []node, idx, totalLines int) int {
	n := nodes[idx]
	for p := n.parent; p != -1; p = nodes[p].parent {
		siblings := nodes[p].children
		for j, c := range siblings {
			if c == idx && j+1 < len(siblings) {
				return nodes[siblings[j+1]].header.Line - 1
			}
		}
	}
	return totalLines
}

// sectionPath renders a section's header-text breadcrumb, e.g.
// "/Hello/Subsection" (spec §4.7, §8.3 scenario A).
func sectionPath(nodes []node, idx int) string {
	var parts []string
	for i := idx; i != 0 && i != -1; i = nodes[i].parent {
		parts = append([]string{nodes[i].header.Text}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}

// emitSection decides whether a section fits as one atomic chunk or must
// be recursively split into its subsections and paragraph overflow (spec
// §4.7).
func (s structural) emitSection(nodes []node, idx int, in Input, path []string) ([]mdtypes.Chunk, []string) {
	n := nodes[idx]
	text := textnorm.JoinRange(in.Lines, n.start, n.end)
	threshold := int(float64(in.Config.MaxChunkSize) * 1.2)

	if len(text) <= threshold || len(n.children) == 0 {
		return s.emitLeaf(nodes, idx, in, path)
	}

	var chunks []mdtypes.Chunk
	var warnings []string

	// Own content up to the first child header becomes its own chunk when
	// non-trivial.
	ownEnd := n.end
	if len(n.children) > 0 {
		ownEnd = nodes[n.children[0]].header.Line - 1
	}
	own := textnorm.JoinRange(in.Lines, n.start, ownEnd)
	if strings.TrimSpace(strings.TrimSpace(strings.TrimPrefix(own, n.header.Text))) != "" {
		c, w := s.splitOverflow(n, ownEnd, nodes, idx, in)
		chunks = append(chunks, c...)
		warnings = append(warnings, w...)
	}

	for _, childIdx := range n.children {
		c, w := s.emitSection(nodes, childIdx, in, nil)
		chunks = append(chunks, c...)
		warnings = append(warnings, w...)
	}

	return chunks, warnings
}

func (s structural) emitLeaf(nodes []node, idx int, in Input, _ []string) ([]mdtypes.Chunk, []string) {
	n := nodes[idx]
	text := textnorm.JoinRange(in.Lines, n.start, n.end)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if len(text) <= int(float64(in.Config.MaxChunkSize)*1.2) {
		return []mdtypes.Chunk{{
			Content:   text,
			StartLine: n.start,
			EndLine:   n.end,
			Metadata: map[string]any{
				"content_type": mdtypes.ChunkTypeHeader,
				"header_level": n.header.Level,
				"header_text":  n.header.Text,
				"section_path": sectionPath(nodes, idx),
			},
		}}, nil
	}
	return s.splitOverflow(n, n.end, nodes, idx, in)
}

// splitOverflow breaks an oversize section's content into paragraph
// groups, without repeating the header text in continuation chunks
// (spec §4.7: "continuations do not duplicate the header"). Paragraph
// splitting is fence-aware so a fenced code block inside the section is
// never fragmented (spec §8.1 property 4): any such block is packed as
// its own atomic unit and emitted with code metadata instead of header
// metadata.
func (s structural) splitOverflow(n node, endLine int, nodes []node, idx int, in Input) ([]mdtypes.Chunk, []string) {
	units := splitParagraphsFenceAware(in.Lines, n.start, endLine, in.Analysis.FencedBlocks)
	groups := packGreedy(units, in.Config.MaxChunkSize, "\n\n")
	path := sectionPath(nodes, idx)

	var chunks []mdtypes.Chunk
	var warnings []string
	cursor := n.start
	for i, g := range groups {
		lineCount := strings.Count(g, "\n") + 1
		end := cursor + lineCount - 1

		if fb, isWholeFence := fenceAt(cursor, in.Analysis.FencedBlocks); isWholeFence && fb.StartLine == cursor && fb.EndLine == end {
			meta := map[string]any{
				"content_type":     mdtypes.ChunkTypeCode,
				"language":         fb.Language,
				"code_block_count": 1,
				"section_path":     path,
				"continuation":     i > 0,
			}
			if meta["language"] == "" {
				meta["language"] = "unknown"
			}
			if len(g) > in.Config.MaxChunkSize {
				meta["oversize_reason"] = "code_block_atomicity"
				meta["allow_oversize"] = true
				warnings = append(warnings, "oversize_chunk:code_block_atomicity")
			}
			chunks = append(chunks, mdtypes.Chunk{Content: g, StartLine: cursor, EndLine: end, Metadata: meta})
			cursor = end + 1
			continue
		}

		meta := map[string]any{
			"content_type": mdtypes.ChunkTypeHeader,
			"header_level": n.header.Level,
			"section_path": path,
			"continuation": i > 0,
		}
		if i == 0 {
			meta["header_text"] = n.header.Text
		}
		chunks = append(chunks, mdtypes.Chunk{Content: g, StartLine: cursor, EndLine: end, Metadata: meta})
		cursor = end + 1
	}
	if len(groups) > 1 {
		warnings = append(warnings, "section_overflow_split")
	}
	return chunks, warnings
}

// mergeSiblings combines adjacent section chunks at the same header level
// and parent path when their combined size still fits the target (spec
// §4.7 step 5).
func mergeSiblings(chunks []mdtypes.Chunk, cfg mdtypes.ChunkConfig) []mdtypes.Chunk {
	var out []mdtypes.Chunk
	for _, c := range chunks {
		if len(out) == 0 {
			out = append(out, c)
			continue
		}
		prev := out[len(out)-1]
		prevPath, _ := prev.Metadata["section_path"].(string)
		curPath, _ := c.Metadata["section_path"].(string)
		samePath := prevPath == curPath
		siblings := prev.Metadata["header_level"] == c.Metadata["header_level"] &&
			prevPath[:strings.LastIndex(prevPath, "/")+1] == curPath[:strings.LastIndex(curPath, "/")+1]
		combined := prev.Size() + c.Size() + 2
		if !samePath && siblings && combined <= cfg.TargetChunkSize &&
			prev.Metadata["content_type"] != mdtypes.ChunkTypeCode &&
			c.Metadata["content_type"] != mdtypes.ChunkTypeCode {
			merged := mdtypes.Chunk{
				Content:   prev.Content + "\n\n" + c.Content,
				StartLine: prev.StartLine,
				EndLine:   c.EndLine,
				Metadata:  cloneMeta(prev.Metadata),
			}
			merged.Metadata["merged_sections"] = true
			out[len(out)-1] = merged
			continue
		}
		out = append(out, c)
	}
	return out
}
