package mdchunk

import "github.com/arjunmehta/mdchunk/internal/mdtypes"

// The pipeline's data types live in internal/mdtypes, not here: parse,
// strategy, and postprocess all need them, and the root package (this
// one) imports all three of those packages as its orchestrator, so the
// types cannot live in a package the leaves import back without
// creating a cycle. Aliasing them here keeps the public API unchanged -
// every name below is usable exactly as before (mdchunk.Chunk,
// mdchunk.ContentCodeHeavy, and so on).

type (
	Chunk               = mdtypes.Chunk
	ContentAnalysis     = mdtypes.ContentAnalysis
	ContentType         = mdtypes.ContentType
	FenceType           = mdtypes.FenceType
	FencedBlock         = mdtypes.FencedBlock
	Header              = mdtypes.Header
	Alignment           = mdtypes.Alignment
	TableBlock          = mdtypes.TableBlock
	ListType            = mdtypes.ListType
	ListBlock           = mdtypes.ListBlock
	URLRun              = mdtypes.URLRun
	PreambleType        = mdtypes.PreambleType
	PreambleInfo        = mdtypes.PreambleInfo
	MissingContentBlock = mdtypes.MissingContentBlock
	ValidationResult    = mdtypes.ValidationResult
	ChunkingResult      = mdtypes.ChunkingResult
)

// Recognized content-type classifications (spec §3.1, §4.3).
const (
	ContentCodeHeavy  = mdtypes.ContentCodeHeavy
	ContentListHeavy  = mdtypes.ContentListHeavy
	ContentTableHeavy = mdtypes.ContentTableHeavy
	ContentStructural = mdtypes.ContentStructural
	ContentMixed      = mdtypes.ContentMixed
	ContentPlain      = mdtypes.ContentPlain
)

// Chunk-level content_type metadata values (spec §3.1).
const (
	ChunkTypeCode     = mdtypes.ChunkTypeCode
	ChunkTypeList     = mdtypes.ChunkTypeList
	ChunkTypeTable    = mdtypes.ChunkTypeTable
	ChunkTypeText     = mdtypes.ChunkTypeText
	ChunkTypeMixed    = mdtypes.ChunkTypeMixed
	ChunkTypeHeader   = mdtypes.ChunkTypeHeader
	ChunkTypePreamble = mdtypes.ChunkTypePreamble
)

// Recognized fence characters (spec §4.1).
const (
	FenceBacktick = mdtypes.FenceBacktick
	FenceTilde    = mdtypes.FenceTilde
)

// Recognized table column alignments (spec §4.2).
const (
	AlignNone   = mdtypes.AlignNone
	AlignLeft   = mdtypes.AlignLeft
	AlignRight  = mdtypes.AlignRight
	AlignCenter = mdtypes.AlignCenter
)

// Recognized list marker styles (spec §3.1).
const (
	ListOrdered   = mdtypes.ListOrdered
	ListUnordered = mdtypes.ListUnordered
	ListTask      = mdtypes.ListTask
	ListMixed     = mdtypes.ListMixed
)

// Recognized preamble classifications (spec §4.4).
const (
	PreambleIntroduction = mdtypes.PreambleIntroduction
	PreambleSummary      = mdtypes.PreambleSummary
	PreambleMetadata     = mdtypes.PreambleMetadata
	PreambleGeneral      = mdtypes.PreambleGeneral
)
