// Package tokencount estimates token counts for chunk and document text.
//
// Grounded on the teacher's internal/helper.go (EncodeStringByTiktoken,
// CountTokens): the GPT-4o tokenizer from tiktoken-go/tokenizer is reused
// as-is, since the spec treats token accounting as an optional, best-effort
// metadata field rather than a core invariant (§4.3 expansion).
package tokencount

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Count returns the number of GPT-4o tokens in s. Errors are non-fatal to
// callers: the convention is to fall back to 0 and carry on, since token
// estimates are metadata, not an invariant-bearing field.
func Count(s string) (int, error) {
	enc, err := tokenizer.ForModel(tokenizer.GPT4o)
	if err != nil {
		return 0, fmt.Errorf("tokencount: get tokenizer: %w", err)
	}
	ids, _, err := enc.Encode(s)
	if err != nil {
		return 0, fmt.Errorf("tokencount: encode: %w", err)
	}
	return len(ids), nil
}

// Estimate is Count with errors swallowed, for call sites (metadata
// enrichment) where a missing token estimate must never fail the pipeline.
func Estimate(s string) int {
	n, err := Count(s)
	if err != nil {
		return 0
	}
	return n
}
