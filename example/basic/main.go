package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arjunmehta/mdchunk"
	"github.com/arjunmehta/mdchunk/cache"
	"github.com/arjunmehta/mdchunk/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

const docPath = "README.md"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	content, err := os.ReadFile(docPath)
	if err != nil {
		logger.Error("failed to read document", "path", docPath, "error", err)
		os.Exit(1)
	}

	l1, err := cache.NewLRU(128)
	if err != nil {
		logger.Error("failed to build result cache", "error", err)
		os.Exit(1)
	}
	boltCache, err := cache.NewBolt("mdchunk-cache.db")
	if err != nil {
		logger.Error("failed to open cache database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := boltCache.Close(); cerr != nil {
			logger.Warn("failed to close cache database", "error", cerr)
		}
	}()
	tiered := cache.NewTiered(l1, boltCache)

	m := metrics.New(prometheus.NewRegistry())

	cfg := mdchunk.NewChunkConfig()

	result, err := mdchunk.Chunk(
		string(content),
		cfg,
		mdchunk.WithCache(tiered),
		mdchunk.WithMetrics(m),
	)
	if err != nil {
		logger.Error("chunking failed", "error", err)
		os.Exit(1)
	}

	logger.Info("chunked document",
		"chunks", len(result.Chunks),
		"strategy", result.StrategyUsed,
		"cache_hit", result.CacheHit,
		"coverage", result.Validation.CharCoverage,
		"warnings", len(result.Warnings),
	)

	for i, c := range result.Chunks {
		fmt.Printf("--- chunk %d (lines %d-%d, %d chars) ---\n%s\n", i, c.StartLine, c.EndLine, c.Size(), c.Metadata["preview"])
	}

	if err := demonstrateBatch(logger, cfg); err != nil {
		logger.Error("batch chunking failed", "error", err)
		os.Exit(1)
	}
}

func demonstrateBatch(logger *slog.Logger, cfg mdchunk.ChunkConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	docs := []mdchunk.BatchInput{
		{ID: "a", Text: "# A\n\nsome text"},
		{ID: "b", Text: "# B\n\nsome more text"},
	}

	results, err := mdchunk.ChunkBatch(ctx, docs, cfg, 2)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			logger.Warn("document failed", "id", r.ID, "error", r.Err)
			continue
		}
		logger.Info("batch result", "id", r.ID, "chunks", len(r.Result.Chunks))
	}
	return nil
}
