package mdchunk

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchInput names one document for ChunkBatch. ID is optional: an empty
// ID is replaced with a generated UUID so results are always traceable
// back to a specific document.
type BatchInput struct {
	ID   string
	Text string
}

// BatchResult pairs a BatchInput's ID with its outcome.
type BatchResult struct {
	ID     string
	Result ChunkingResult
	Err    error
}

// ChunkBatch chunks multiple documents concurrently, bounded by
// concurrency (grounded on the teacher's bounded-worker insert pipeline).
// Results preserve the input order regardless of completion order; a
// per-document error does not cancel the others.
func ChunkBatch(ctx context.Context, docs []BatchInput, cfg ChunkConfig, concurrency int, opts ...Option) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]BatchResult, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, doc := range docs {
		i, doc := i, doc
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{ID: doc.ID, Err: err}
				return nil
			}
			res, err := Chunk(doc.Text, cfg, opts...)
			results[i] = BatchResult{ID: doc.ID, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
