package mdchunk

import "github.com/arjunmehta/mdchunk/internal/mdtypes"

// ChunkConfig controls every tunable behavior of the chunking pipeline
// (spec §3.1). It is an alias of mdtypes.ChunkConfig - see types.go for
// why the concrete definition lives in internal/mdtypes - so every
// method and constant below is simply forwarded from there.
//
// Zero-value fields are defaulted by NewChunkConfig; a ChunkConfig built
// directly (struct literal) and passed to Chunk is defaulted and
// validated the same way an internal constructor would.
type ChunkConfig = mdtypes.ChunkConfig

// Default configuration values (spec §3.1).
const (
	DefaultMaxChunkSize         = mdtypes.DefaultMaxChunkSize
	DefaultMinChunkSize         = mdtypes.DefaultMinChunkSize
	DefaultTargetChunkSize      = mdtypes.DefaultTargetChunkSize
	DefaultOverlapSize          = mdtypes.DefaultOverlapSize
	DefaultOverlapPercentage    = mdtypes.DefaultOverlapPercentage
	DefaultCodeRatioThreshold   = mdtypes.DefaultCodeRatioThreshold
	DefaultMinCodeBlocks        = mdtypes.DefaultMinCodeBlocks
	DefaultStructuralMinHeaders = mdtypes.DefaultStructuralMinHeaders
	DefaultTolerance            = mdtypes.DefaultTolerance
	DefaultRespectHeaderLevel   = mdtypes.DefaultRespectHeaderLevel
)

// NewChunkConfig returns the default configuration (spec §3.1 defaults).
func NewChunkConfig() ChunkConfig {
	return mdtypes.NewChunkConfig()
}
