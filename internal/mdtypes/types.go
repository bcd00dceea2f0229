// Package mdtypes holds the data types shared by every stage of the
// chunking pipeline. It exists only to keep the dependency graph
// acyclic: parse, strategy, and postprocess need these types but must
// not import the root package, since the root package (the orchestrator)
// imports all three of them. The root package re-exports everything here
// under its own names via type aliases, so callers of the public API
// never see this package.
package mdtypes

import (
	"encoding/json"

	"github.com/arjunmehta/mdchunk/metrics"
)

// Chunk is the output unit of the engine: a contiguous slice of the source
// document plus the metadata a retrieval pipeline needs to make use of it.
//
// Chunk is created exclusively by a strategy (see package strategy) and is
// mutated only by the post-processing pipeline (merge, overlap, enrich); it
// is immutable once Chunk returns it to the caller.
type Chunk struct {
	Content   string         `json:"content"`
	StartLine int            `json:"start_line"`
	EndLine   int            `json:"end_line"`
	Metadata  map[string]any `json:"metadata"`
}

// Size returns the character length of the chunk's content.
func (c Chunk) Size() int {
	return len(c.Content)
}

// Equal reports whether two chunks are equivalent after normalizing
// metadata through the same JSON encoding both would go through on the
// wire (so an int stored in Metadata compares equal to the float64 it
// round-trips to). This is the comparison the serialization round-trip
// property (spec §8.1 property 6) is checked against.
func (c Chunk) Equal(other Chunk) bool {
	if c.Content != other.Content || c.StartLine != other.StartLine || c.EndLine != other.EndLine {
		return false
	}
	return jsonEqual(c.Metadata, other.Metadata)
}

// jsonEqual compares two values by round-tripping both through
// encoding/json, which is how Go canonicalizes map key order and numeric
// types (ints become float64). This is what makes the serialization
// round-trip property (spec §8.1 property 6, §6.2) checkable without the
// engine hand-rolling a canonical-form comparator.
func jsonEqual(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}

// ContentAnalysis is produced once per input by Analyze, consumed
// read-only by the strategy selector and strategies, and discarded once
// chunking completes.
type ContentAnalysis struct {
	TotalChars int
	TotalLines int

	CodeRatio  float64
	TextRatio  float64
	ListRatio  float64
	TableRatio float64

	CodeBlockCount     int
	ListCount          int
	TableCount         int
	HeaderCountByLevel map[int]int

	FencedBlocks []FencedBlock
	Headers      []Header
	Tables       []TableBlock
	Lists        []ListBlock
	URLRuns      []URLRun

	ContentType     ContentType
	ComplexityScore float64
	HasMixedContent bool

	Preamble *PreambleInfo

	// TokenEstimate is a best-effort GPT-4o token count for the whole
	// document, populated via internal/tokencount when token-budget-aware
	// hosts need it. Zero when estimation fails; failure is non-fatal.
	TokenEstimate int
}

// ContentType classifies the dominant character of a document or section.
type ContentType string

// Recognized content-type classifications (spec §3.1, §4.3).
const (
	ContentCodeHeavy  ContentType = "code_heavy"
	ContentListHeavy  ContentType = "list_heavy"
	ContentTableHeavy ContentType = "table_heavy"
	ContentStructural ContentType = "structural"
	ContentMixed      ContentType = "mixed"
	ContentPlain      ContentType = "plain"
)

// Chunk-level content_type metadata values (spec §3.1).
const (
	ChunkTypeCode     = "code"
	ChunkTypeList     = "list"
	ChunkTypeTable    = "table"
	ChunkTypeText     = "text"
	ChunkTypeMixed    = "mixed"
	ChunkTypeHeader   = "header"
	ChunkTypePreamble = "preamble"
)

// FenceType distinguishes the two Markdown fence characters.
type FenceType string

// Recognized fence characters (spec §4.1).
const (
	FenceBacktick FenceType = "backtick"
	FenceTilde    FenceType = "tilde"
)

// FencedBlock describes one fenced code block located by the fence scanner.
type FencedBlock struct {
	StartLine    int
	EndLine      int
	FenceType    FenceType
	FenceLength  int
	Indent       int
	Language     string
	NestingLevel int
	Unclosed     bool
}

// Header describes one ATX or Setext heading.
type Header struct {
	Line       int
	Level      int
	Text       string
	ByteOffset int
}

// Alignment is a table column's alignment as captured from its separator
// row.
type Alignment string

// Recognized table column alignments (spec §4.2).
const (
	AlignNone   Alignment = "none"
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// TableBlock describes one GFM-style pipe table: a header row, a separator
// row, and one or more data rows.
type TableBlock struct {
	StartLine        int
	EndLine          int
	ColumnCount      int
	HeaderRowLine    int
	SeparatorRowLine int
	DataRowCount     int
	Alignments       []Alignment
}

// ListType distinguishes the marker styles a ListBlock may use.
type ListType string

// Recognized list marker styles (spec §3.1).
const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
	ListTask      ListType = "task"
	ListMixed     ListType = "mixed"
)

// ListBlock describes one contiguous list (all items at the top level plus
// their nested continuations).
type ListBlock struct {
	StartLine       int
	EndLine         int
	ListType        ListType
	ItemCount       int
	MaxNestingDepth int
}

// URLRun is three or more consecutive lines each containing a URL,
// tracked so the completeness validator and overlap manager never
// fragment a pool of links (spec §4.2).
type URLRun struct {
	StartLine int
	EndLine   int
}

// PreambleType classifies the content that precedes the first header.
type PreambleType string

// Recognized preamble classifications (spec §4.4).
const (
	PreambleIntroduction PreambleType = "introduction"
	PreambleSummary      PreambleType = "summary"
	PreambleMetadata     PreambleType = "metadata"
	PreambleGeneral      PreambleType = "general"
)

// PreambleInfo describes the content before a document's first header.
type PreambleInfo struct {
	StartLine      int
	EndLine        int
	Type           PreambleType
	Content        string
	MetadataFields map[string]string
}

// MissingContentBlock describes one contiguous run of input lines that the
// completeness validator could not find inside any output chunk (spec
// §4.12).
type MissingContentBlock struct {
	StartLine      int
	EndLine        int
	ContentPreview string
	SizeChars      int
}

// ValidationResult is produced by Validate (spec §4.12, §6.1).
type ValidationResult struct {
	IsValid       bool
	InputChars    int
	OutputChars   int
	MissingChars  int
	CharCoverage  float64
	MissingBlocks []MissingContentBlock
	Warnings      []string
}

// ChunkingResult is the return value of Chunk (spec §6.1).
type ChunkingResult struct {
	Chunks           []Chunk
	Analysis         ContentAnalysis
	Warnings         []string
	StrategyUsed     string
	ProcessingTimeMS float64
	Success          bool

	// Validation is always populated (spec §4.12: the validator never
	// aborts chunking; failures surface as warnings unless strict mode is
	// requested via WithStrict).
	Validation ValidationResult

	// CacheHit reports whether Chunks was served from the result cache
	// (expansion, §6.1) rather than computed fresh.
	CacheHit bool

	// Counters is a point-in-time snapshot of the Prometheus counters this
	// run touched (expansion, §6.1), populated only when metrics are
	// enabled via WithMetrics.
	Counters *metrics.Snapshot
}
