// Package concurrency provides a bounded goroutine pool (ants) for
// fanning out independent external calls per §5's concurrency model;
// RAG session embedding runs its embedding batches through it.
package concurrency

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// Pool bounds the number of in-flight goroutines used for batch
// embedding.
type Pool struct {
	pool *ants.Pool
}

func New(size int) (*Pool, error) {
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, apperrors.NewInternalError("construct worker pool", err)
	}
	return &Pool{pool: p}, nil
}

func (p *Pool) Release() {
	p.pool.Release()
}

// batchEmbedFn matches embedding.Embedder.BatchEmbed's signature; callers
// pass the model's BatchEmbed method directly so this package never needs
// to import embedding.
type batchEmbedFn func(ctx context.Context, texts []string) ([][]float32, error)

// RunBatches splits texts into chunks of batchSize and embeds each
// chunk concurrently, bounded by the pool's capacity, preserving
// input order in the result.
func (p *Pool) RunBatches(ctx context.Context, texts []string, batchSize int, embed batchEmbedFn) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = len(texts)
	}
	type job struct {
		start int
		input []string
	}
	var jobs []job
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		jobs = append(jobs, job{start: start, input: texts[start:end]})
	}

	results := make([][]float32, len(texts))
	var wg sync.WaitGroup
	errCh := make(chan error, len(jobs))

	for _, j := range jobs {
		j := j
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			vecs, err := embed(ctx, j.input)
			if err != nil {
				errCh <- err
				return
			}
			for i, v := range vecs {
				results[j.start+i] = v
			}
		})
		if submitErr != nil {
			wg.Done()
			errCh <- apperrors.NewInternalError("submit embedding job", submitErr)
		}
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
