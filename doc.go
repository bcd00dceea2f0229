// Package mdchunk partitions a Markdown document into a bounded sequence of
// contiguous, size-constrained, semantically coherent chunks suitable for
// embedding generation and retrieval-augmented generation pipelines.
//
// The entry points are Chunk, Analyze, and Validate. Chunk drives the full
// pipeline (analyze -> select strategy -> apply -> merge -> overlap ->
// enrich -> validate) and returns a ChunkingResult. Analyze and Validate
// expose the analysis and validation stages independently for callers that
// only need one of them.
package mdchunk
