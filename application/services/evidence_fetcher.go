package services

import (
	"context"
	"errors"

	"pledgeboard-backend/application/ports"
	"pledgeboard-backend/domain/core/entities"
	pkgerrors "pledgeboard-backend/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the store's cardinality cap on fetch-by-identifier-set
// queries.
const DefaultChunkSize = 30

// DefaultFetchConcurrency bounds how many chunk lookups run at once.
const DefaultFetchConcurrency = 4

// ChunkFailure records one failed chunk of a batched fetch.
type ChunkFailure struct {
	Index int
	IDs   []string
	Err   error
}

// BatchResult is the merged outcome of a batched fetch. Records are
// deduplicated by identifier in first-seen order of the input ID list.
// Failed is non-empty when some chunks could not be fetched; the caller can
// then show partial data with a caveat instead of hiding it.
type BatchResult struct {
	Records []entities.EvidenceRecord
	Failed  []ChunkFailure
}

// Partial reports whether some, but not all, chunks failed
func (r *BatchResult) Partial() bool {
	return len(r.Failed) > 0 && len(r.Records) > 0
}

// EvidenceFetcher retrieves evidence records by identifier in bounded-size
// batches and merges the results. Chunk lookups are independent and run
// concurrently up to a bounded worker count; a failed chunk never aborts its
// siblings. Cancellation of the caller's context abandons the whole fetch.
type EvidenceFetcher struct {
	repo          ports.EvidenceRepository
	chunkSize     int
	maxConcurrent int
	logger        *zap.Logger
}

// NewEvidenceFetcher creates a new evidence fetcher
func NewEvidenceFetcher(repo ports.EvidenceRepository, chunkSize, maxConcurrent int, logger *zap.Logger) *EvidenceFetcher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultFetchConcurrency
	}
	return &EvidenceFetcher{
		repo:          repo,
		chunkSize:     chunkSize,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// FetchByIDs fetches the records for an ordered identifier list.
//
// Duplicate identifiers are dropped first, keeping first-seen order;
// upstream linkage data may repeat an identifier, and the store rejects a
// batched lookup whose key set contains the same key twice. The distinct
// list is then partitioned into fixed-size chunks preserving order, one
// store lookup per chunk. The error is nil when every chunk succeeded, a
// partial-batch error when some failed, and a store error when all did, so
// an empty result from a broken store is never mistaken for "truly no
// evidence".
func (f *EvidenceFetcher) FetchByIDs(ctx context.Context, ids []string) (*BatchResult, error) {
	result := &BatchResult{Records: []entities.EvidenceRecord{}}
	if len(ids) == 0 {
		return result, nil
	}

	chunks := chunkIDs(dedupeIDs(ids), f.chunkSize)
	chunkRecords := make([][]entities.EvidenceRecord, len(chunks))
	chunkErrs := make([]error, len(chunks))

	var g errgroup.Group
	g.SetLimit(f.maxConcurrent)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				chunkErrs[i] = err
				return nil
			}
			records, err := f.repo.GetByIDs(ctx, chunk)
			if err != nil {
				chunkErrs[i] = err
				return nil
			}
			chunkRecords[i] = records
			return nil
		})
	}
	g.Wait()

	// Cancelled mid-flight: discard partial results rather than merge them.
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, pkgerrors.NewTimeoutError("evidence batch fetch").WithCause(err)
		}
		return nil, err
	}

	for i := range chunks {
		if chunkErrs[i] != nil {
			f.logger.Warn("Evidence chunk lookup failed",
				zap.Int("chunk", i),
				zap.Int("chunkSize", len(chunks[i])),
				zap.Error(chunkErrs[i]),
			)
			result.Failed = append(result.Failed, ChunkFailure{
				Index: i,
				IDs:   chunks[i],
				Err:   chunkErrs[i],
			})
			continue
		}
		result.Records = append(result.Records, chunkRecords[i]...)
	}

	switch {
	case len(result.Failed) == 0:
		return result, nil
	case len(result.Failed) == len(chunks):
		return result, pkgerrors.NewStoreError("evidence batch fetch", result.Failed[0].Err)
	default:
		return result, pkgerrors.NewPartialBatchError(len(result.Failed), len(chunks), result.Failed[0].Err)
	}
}

// dedupeIDs drops repeated identifiers, keeping first-seen order
func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// chunkIDs partitions ids into slices of at most size, preserving order
func chunkIDs(ids []string, size int) [][]string {
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
