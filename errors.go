package mdchunk

import "github.com/arjunmehta/mdchunk/internal/mdtypes"

// ErrEmptyInput is returned (as a warning, not a fatal error - spec §7
// InputError/EmptyInput) when the input is empty or whitespace-only.
var ErrEmptyInput = mdtypes.ErrEmptyInput

// EncodingError reports input that is not valid UTF-8 (spec §7
// InputError/InvalidEncoding). Fatal: the engine never attempts to repair
// invalid byte sequences.
type EncodingError = mdtypes.EncodingError

// ConfigError reports a mutually inconsistent ChunkConfig (spec §7
// ConfigurationError). Fatal: Chunk returns it before any chunking work
// starts.
type ConfigError = mdtypes.ConfigError

// StrategyError reports a strategy-selection or strategy-application
// failure (spec §7 StrategyError). Candidates lists the strategies that
// were considered (for StrategyNotFound, the available ones; for
// NoStrategyCanHandle, the ones that were tried and rejected or failed).
type StrategyError = mdtypes.StrategyError

// DataLossError is raised in strict validation mode when coverage falls
// below the configured tolerance (spec §4.12, §7 DataLossError).
type DataLossError = mdtypes.DataLossError

// ValidationError reports an internal post-chunk invariant violation
// (spec §7 ValidationError) such as an empty chunk or non-monotonic
// ordering slipping past a strategy. It indicates an engine bug, not a bad
// input, and is always fatal.
type ValidationError = mdtypes.ValidationError

// invariantPanic is the internal "panic on bug" escape hatch spec §9
// allows ("an implementation may choose to represent via panic-on-bug in
// debug builds"). It is recovered at the engine.go boundary and converted
// to a *ValidationError; no invariantPanic is ever allowed to reach a
// caller of Chunk.
type invariantPanic = mdtypes.InvariantPanic
