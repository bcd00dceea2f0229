package mdchunk

import (
	"github.com/arjunmehta/mdchunk/internal/textnorm"
	"github.com/arjunmehta/mdchunk/parse"
)

// Analyze runs the fence scanner, element detector, and content
// classifier over text and returns the resulting ContentAnalysis without
// chunking it (spec §4.3). Callers that want the preamble populated too
// should use Chunk, which always extracts it when ChunkConfig.ExtractPreamble
// is set; Analyze extracts it unconditionally since there is no config to
// consult.
func Analyze(text string) (ContentAnalysis, error) {
	if off := firstInvalidUTF8(text); off >= 0 {
		return ContentAnalysis{}, &EncodingError{ByteOffset: off}
	}

	normalized := textnorm.Normalize(text)
	analysis, _ := parse.Analyze(normalized)
	analysis.Preamble = parse.ExtractPreamble(normalized, analysis.Headers)
	return analysis, nil
}
