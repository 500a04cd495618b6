package concurrency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatchesPreservesOrder(t *testing.T) {
	pool, err := New(4)
	require.NoError(t, err)
	defer pool.Release()

	texts := []string{"a", "b", "c", "d", "e"}
	embed := func(ctx context.Context, batch []string) ([][]float32, error) {
		out := make([][]float32, len(batch))
		for i, s := range batch {
			out[i] = []float32{float32(s[0])}
		}
		return out, nil
	}

	results, err := pool.RunBatches(context.Background(), texts, 2, embed)
	require.NoError(t, err)
	require.Len(t, results, len(texts))
	for i := range results {
		require.Equal(t, []float32{float32(texts[i][0])}, results[i])
	}
}

func TestRunBatchesPropagatesError(t *testing.T) {
	pool, err := New(2)
	require.NoError(t, err)
	defer pool.Release()

	wantErr := errors.New("embedding provider unavailable")
	embed := func(ctx context.Context, batch []string) ([][]float32, error) {
		return nil, wantErr
	}

	_, err = pool.RunBatches(context.Background(), []string{"x", "y", "z"}, 1, embed)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestRunBatchesZeroBatchSizeUsesSingleBatch(t *testing.T) {
	pool, err := New(2)
	require.NoError(t, err)
	defer pool.Release()

	var sawLen int
	embed := func(ctx context.Context, batch []string) ([][]float32, error) {
		sawLen = len(batch)
		out := make([][]float32, len(batch))
		return out, nil
	}

	_, err = pool.RunBatches(context.Background(), []string{"a", "b", "c"}, 0, embed)
	require.NoError(t, err)
	assert.Equal(t, 3, sawLen)
}
