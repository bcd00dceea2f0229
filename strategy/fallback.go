package strategy

import (
	"regexp"
	"strings"

	"github.com/arjunmehta/mdchunk/internal/mdtypes"
)

// fallback applies when neither the code-aware nor structural strategy
// can handle the document: split by paragraph, then sentence, then word
// boundary, as needed to fit MaxChunkSize (spec §4.8).
type fallback struct{}

func (fallback) Name() string { return "fallback" }
func (fallback) Priority() int { return 3 }

func (fallback) CanHandle(mdtypes.ContentAnalysis, mdtypes.ChunkConfig) bool { return true }

func (fallback) Quality(analysis mdtypes.ContentAnalysis) float64 {
	if analysis.ContentType == mdtypes.ContentPlain {
		return 0.6
	}
	return 0.3
}

// sentenceBoundary matches a sentence terminator followed by whitespace
// and an uppercase letter, guarding against splitting on abbreviations
// ("e.g.", "Dr.") and decimal numbers ("3.14") (spec §4.8 step 3).
var sentenceBoundary = regexp.MustCompile(`([.!?])\s+([A-Z])`)

var abbreviations = []string{"e.g.", "i.e.", "etc.", "Dr.", "Mr.", "Mrs.", "Ms.", "vs.", "Inc.", "Ltd.", "Jr.", "Sr."}

// Apply first segments the document around fenced code blocks, since
// atomic code-block preservation (spec §8.1 property 4) holds regardless
// of which strategy was selected; each code segment is emitted the same
// way code-aware does. Only the text segments in between go through
// paragraph, then sentence, then word-boundary splitting (spec §4.8).
func (f fallback) Apply(in Input) ([]mdtypes.Chunk, []string, error) {
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
		c, w := f.emitTextSegment(seg, in.Config)
		chunks = append(chunks, c...)
		warnings = append(warnings, w...)
	}

	for i := range chunks {
		chunks[i].Metadata["chunk_index"] = i
		chunks[i].Metadata["total_chunks"] = len(chunks)
	}

	return chunks, warnings, nil
}

func (fallback) emitTextSegment(seg segment, cfg mdtypes.ChunkConfig) ([]mdtypes.Chunk, []string) {
	paras := splitParagraphs(seg.text)
	if len(paras) == 0 {
		return nil, nil
	}

	var units []string
	for _, p := range paras {
		if len(p) <= cfg.MaxChunkSize {
			units = append(units, p)
			continue
		}
		units = append(units, splitSentences(p, cfg.MaxChunkSize)...)
	}

	groups := packGreedy(units, cfg.MaxChunkSize, "\n\n")

	var chunks []mdtypes.Chunk
	var warnings []string
	cursor := seg.start
	for _, g := range groups {
		if len(g) > cfg.MaxChunkSize && !cfg.AllowOversize {
			words := splitWords(g, cfg.MaxChunkSize)
			warnings = append(warnings, "word_boundary_split")
			for _, w := range words {
				lc := strings.Count(w, "\n") + 1
				end := cursor + lc - 1
				chunks = append(chunks, mdtypes.Chunk{
					Content: w, StartLine: cursor, EndLine: end,
					Metadata: map[string]any{"content_type": mdtypes.ChunkTypeText},
				})
				cursor = end + 1
			}
			continue
		}
		lc := strings.Count(g, "\n") + 1
		end := cursor + lc - 1
		chunks = append(chunks, mdtypes.Chunk{
			Content: g, StartLine: cursor, EndLine: end,
			Metadata: map[string]any{"content_type": mdtypes.ChunkTypeText},
		})
		cursor = end + 1
	}
	return chunks, warnings
}

// splitSentences breaks an oversize paragraph on sentence boundaries,
// protecting known abbreviations and decimal numbers, then packs the
// resulting sentences to maxSize (spec §4.8 step 3).
func splitSentences(p string, maxSize int) []string {
	protected := p
	for i, abbr := range abbreviations {
		protected = strings.ReplaceAll(protected, abbr, placeholderFor(i))
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringSubmatchIndex(protected, -1) {
		end := loc[3] // end of the terminator group
		sentences = append(sentences, protected[last:end])
		last = loc[4] // start of the following uppercase letter
	}
	sentences = append(sentences, protected[last:])

	for i, s := range sentences {
		for j, abbr := range abbreviations {
			s = strings.ReplaceAll(s, placeholderFor(j), abbr)
		}
		sentences[i] = s
	}

	return packGreedy(trimAll(sentences), maxSize, " ")
}

func placeholderFor(i int) string {
	return "\x00ABBR" + string(rune('A'+i)) + "\x00"
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		t := strings.TrimSpace(s)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitWords is the last-resort splitter, used only when a group still
// exceeds MaxChunkSize after sentence splitting and oversize chunks are
// disallowed (spec §4.8 step 4).
func splitWords(s string, maxSize int) []string {
	words := strings.Fields(s)
	return packGreedy(words, maxSize, " ")
}
