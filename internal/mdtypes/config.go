package mdtypes

// ChunkConfig controls every tunable behavior of the chunking pipeline
// (spec §3.1). Zero-value fields are defaulted by NewChunkConfig; a
// ChunkConfig built directly (struct literal) and passed to Chunk is
// defaulted and validated the same way an internal constructor would.
type ChunkConfig struct {
	MaxChunkSize    int
	MinChunkSize    int
	TargetChunkSize int

	OverlapSize       int
	OverlapPercentage float64
	EnableOverlap     bool

	AllowOversize bool

	CodeRatioThreshold   float64
	MinCodeBlocks        int
	StructuralMinHeaders int

	ExtractPreamble       bool
	SeparatePreambleChunk bool

	PreserveAtomic bool

	// Tolerance is epsilon in the coverage invariant (spec §3.2 invariant
	// 3): the validator accepts up to this fraction of significant
	// characters missing. Default 0.05.
	Tolerance float64

	// RespectHeaderLevel bounds how aggressively the merger may cross a
	// section boundary (spec §4.9: "a section-path boundary at a level <=
	// configured respect_header_level"). Default 1 (never merge across an
	// H1 boundary).
	RespectHeaderLevel int
}

// Default configuration values (spec §3.1).
const (
	DefaultMaxChunkSize         = 4096
	DefaultMinChunkSize         = 512
	DefaultTargetChunkSize      = 1536
	DefaultOverlapSize          = 200
	DefaultOverlapPercentage    = 0.1
	DefaultCodeRatioThreshold   = 0.7
	DefaultMinCodeBlocks        = 3
	DefaultStructuralMinHeaders = 2
	DefaultTolerance            = 0.05
	DefaultRespectHeaderLevel   = 1
)

// NewChunkConfig returns the default configuration (spec §3.1 defaults).
func NewChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChunkSize:         DefaultMaxChunkSize,
		MinChunkSize:         DefaultMinChunkSize,
		TargetChunkSize:      DefaultTargetChunkSize,
		OverlapSize:          DefaultOverlapSize,
		OverlapPercentage:    DefaultOverlapPercentage,
		EnableOverlap:        true,
		AllowOversize:        true,
		CodeRatioThreshold:   DefaultCodeRatioThreshold,
		MinCodeBlocks:        DefaultMinCodeBlocks,
		StructuralMinHeaders: DefaultStructuralMinHeaders,
		ExtractPreamble:      true,
		PreserveAtomic:       true,
		Tolerance:            DefaultTolerance,
		RespectHeaderLevel:   DefaultRespectHeaderLevel,
	}
}

// WithDefaults fills any zero-valued field that has a meaningful default,
// mirroring the zero-means-default convention of the teacher's
// handler.Default (handler/default.go's ChunkMaxTokenSize/ChunkOverlapTokenSize).
func (c ChunkConfig) WithDefaults() ChunkConfig {
	if c.MaxChunkSize == 0 {
		c.MaxChunkSize = DefaultMaxChunkSize
	}
	if c.MinChunkSize == 0 {
		c.MinChunkSize = DefaultMinChunkSize
	}
	if c.TargetChunkSize == 0 {
		c.TargetChunkSize = DefaultTargetChunkSize
	}
	if c.OverlapPercentage == 0 {
		c.OverlapPercentage = DefaultOverlapPercentage
	}
	if c.CodeRatioThreshold == 0 {
		c.CodeRatioThreshold = DefaultCodeRatioThreshold
	}
	if c.MinCodeBlocks == 0 {
		c.MinCodeBlocks = DefaultMinCodeBlocks
	}
	if c.StructuralMinHeaders == 0 {
		c.StructuralMinHeaders = DefaultStructuralMinHeaders
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.RespectHeaderLevel == 0 {
		c.RespectHeaderLevel = DefaultRespectHeaderLevel
	}
	return c
}

// Validate checks the mutual-consistency rules spec §7 calls
// ConfigurationError conditions, returning a *ConfigError describing the
// first violation found.
func (c ChunkConfig) Validate() error {
	switch {
	case c.MaxChunkSize <= 0:
		return &ConfigError{Field: "MaxChunkSize", Message: "must be positive"}
	case c.MinChunkSize < 0:
		return &ConfigError{Field: "MinChunkSize", Message: "must not be negative"}
	case c.MinChunkSize > c.MaxChunkSize:
		return &ConfigError{Field: "MinChunkSize", Message: "must not exceed MaxChunkSize"}
	case c.TargetChunkSize < c.MinChunkSize || c.TargetChunkSize > c.MaxChunkSize:
		return &ConfigError{Field: "TargetChunkSize", Message: "must be between MinChunkSize and MaxChunkSize"}
	case c.OverlapSize < 0:
		return &ConfigError{Field: "OverlapSize", Message: "must not be negative"}
	case c.OverlapSize >= c.MaxChunkSize:
		return &ConfigError{Field: "OverlapSize", Message: "must be less than MaxChunkSize"}
	case c.OverlapPercentage < 0 || c.OverlapPercentage > 1:
		return &ConfigError{Field: "OverlapPercentage", Message: "must be within [0,1]"}
	case c.CodeRatioThreshold < 0 || c.CodeRatioThreshold > 1:
		return &ConfigError{Field: "CodeRatioThreshold", Message: "must be within [0,1]"}
	case c.MinCodeBlocks <= 0:
		return &ConfigError{Field: "MinCodeBlocks", Message: "must be positive"}
	case c.StructuralMinHeaders <= 0:
		return &ConfigError{Field: "StructuralMinHeaders", Message: "must be positive"}
	case c.Tolerance < 0 || c.Tolerance > 1:
		return &ConfigError{Field: "Tolerance", Message: "must be within [0,1]"}
	case c.RespectHeaderLevel < 1 || c.RespectHeaderLevel > 6:
		return &ConfigError{Field: "RespectHeaderLevel", Message: "must be within [1,6]"}
	}
	return nil
}

// EffectiveOverlapSize resolves the fixed-vs-percentage overlap rule
// (spec §3.1: "fixed overlap... takes precedence... when > 0") against a
// neighbor chunk of the given size, clamped to the 50% overlap bound
// (spec §3.2 invariant 8).
func (c ChunkConfig) EffectiveOverlapSize(neighborSize int) int {
	var size int
	if c.OverlapSize > 0 {
		size = c.OverlapSize
		if cap := int(0.4 * float64(neighborSize)); cap < size {
			size = cap
		}
	} else {
		size = int(c.OverlapPercentage * float64(c.TargetChunkSize))
	}
	if limit := c.TargetChunkSize / 2; size > limit {
		size = limit
	}
	if size < 0 {
		size = 0
	}
	return size
}
