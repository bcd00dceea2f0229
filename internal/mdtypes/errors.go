package mdtypes

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned (as a warning, not a fatal error - spec §7
// InputError/EmptyInput) when the input is empty or whitespace-only.
var ErrEmptyInput = errors.New("mdchunk: input is empty or whitespace-only")

// EncodingError reports input that is not valid UTF-8 (spec §7
// InputError/InvalidEncoding). Fatal: the engine never attempts to repair
// invalid byte sequences.
type EncodingError struct {
	ByteOffset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("mdchunk: invalid UTF-8 byte sequence at offset %d", e.ByteOffset)
}

// ConfigError reports a mutually inconsistent ChunkConfig (spec §7
// ConfigurationError). Fatal: Chunk returns it before any chunking work
// starts.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mdchunk: invalid config field %s: %s", e.Field, e.Message)
}

// StrategyError reports a strategy-selection or strategy-application
// failure (spec §7 StrategyError). Candidates lists the strategies that
// were considered (for StrategyNotFound, the available ones; for
// NoStrategyCanHandle, the ones that were tried and rejected or failed).
type StrategyError struct {
	Strategy   string
	Candidates []string
	Code       string // "strategy_not_found", "strategy_failed", "no_strategy_can_handle"
	Err        error
}

func (e *StrategyError) Error() string {
	msg := fmt.Sprintf("mdchunk: strategy error [%s] for %q", e.Code, e.Strategy)
	if len(e.Candidates) > 0 {
		msg += fmt.Sprintf(" (candidates: %v)", e.Candidates)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// DataLossError is raised in strict validation mode when coverage falls
// below the configured tolerance (spec §4.12, §7 DataLossError).
type DataLossError struct {
	Result ValidationResult
}

func (e *DataLossError) Error() string {
	return fmt.Sprintf(
		"mdchunk: data loss detected: coverage %.4f below tolerance, %d chars missing across %d blocks",
		e.Result.CharCoverage, e.Result.MissingChars, len(e.Result.MissingBlocks),
	)
}

// ValidationError reports an internal post-chunk invariant violation
// (spec §7 ValidationError) such as an empty chunk or non-monotonic
// ordering slipping past a strategy. It indicates an engine bug, not a bad
// input, and is always fatal.
type ValidationError struct {
	Code    string
	Message string
	Context map[string]any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mdchunk: invariant violation [%s]: %s (%v)", e.Code, e.Message, e.Context)
}

// InvariantPanic is the internal "panic on bug" escape hatch spec §9
// allows ("an implementation may choose to represent via panic-on-bug in
// debug builds"). It is recovered at the engine.go boundary and converted
// to a *ValidationError; no InvariantPanic is ever allowed to reach a
// caller of Chunk.
type InvariantPanic struct {
	Err *ValidationError
}
