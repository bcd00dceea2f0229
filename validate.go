package mdchunk

import "github.com/arjunmehta/mdchunk/postprocess"

// Validate checks a chunk sequence against its source text for
// completeness (spec §4.12, §6.1), independent of the pipeline that
// produced the chunks. tolerance is the fraction of significant
// characters that may be missing before the result is considered
// invalid; pass ChunkConfig.Tolerance (or DefaultTolerance) for the
// engine's own default.
func Validate(text string, chunks []Chunk, tolerance float64) (ValidationResult, error) {
	if off := firstInvalidUTF8(text); off >= 0 {
		return ValidationResult{}, &EncodingError{ByteOffset: off}
	}
	return postprocess.Validate(text, chunks, tolerance), nil
}
