// Package dbtest holds a behavioural test suite shared by every database
// backend.
package dbtest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/en-tropyc/blueshift/internal/storage/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises db against the database.DB contract. The database must be
// empty and is left open.
func Run(t *testing.T, db database.DB) {
	ctx := context.Background()

	t.Run("Read missing key", func(t *testing.T) {
		_, err := db.Read(ctx, []byte("absent"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Write and read", func(t *testing.T) {
		require.NoError(t, db.Write(ctx, []byte("k1"), []byte("v1")))
		got, err := db.Read(ctx, []byte("k1"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)

		require.NoError(t, db.Write(ctx, []byte("k1"), []byte("v2")))
		got, err = db.Read(ctx, []byte("k1"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, db.Write(ctx, []byte("gone"), []byte("x")))
		require.NoError(t, db.Delete(ctx, []byte("gone")))
		_, err := db.Read(ctx, []byte("gone"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Batch Operations", func(t *testing.T) {
		ops := []database.BatchOperation{
			{Type: database.BatchPut, Key: []byte("batch1"), Value: []byte("value1")},
			{Type: database.BatchPut, Key: []byte("batch2"), Value: []byte("value2")},
			{Type: database.BatchDelete, Key: []byte("batch1")},
		}
		require.NoError(t, db.Batch(ctx, ops))

		_, err := db.Read(ctx, []byte("batch1"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)

		value, err := db.Read(ctx, []byte("batch2"))
		require.NoError(t, err)
		assert.Equal(t, []byte("value2"), value)
	})

	t.Run("Batch rejects unknown op", func(t *testing.T) {
		ops := []database.BatchOperation{
			{Type: database.BatchPut, Key: []byte("half"), Value: []byte("x")},
			{Type: database.BatchOpType(99), Key: []byte("bad")},
		}
		require.Error(t, db.Batch(ctx, ops))
		_, err := db.Read(ctx, []byte("half"))
		assert.ErrorIs(t, err, database.ErrKeyNotFound)
	})

	t.Run("Iterator", func(t *testing.T) {
		testData := map[string]string{
			"iter1": "value1",
			"iter2": "value2",
			"iter3": "value3",
		}
		for k, v := range testData {
			require.NoError(t, db.Write(ctx, []byte(k), []byte(v)))
		}

		iter, err := db.Iterator(ctx, []byte("iter1"), []byte("iter3"))
		require.NoError(t, err)
		defer iter.Close()

		var keys []string
		for iter.Next() {
			key := string(iter.Key())
			assert.Equal(t, testData[key], string(iter.Value()))
			keys = append(keys, key)
		}
		require.NoError(t, iter.Error())
		assert.Equal(t, []string{"iter1", "iter2"}, keys)
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		const numGoroutines = 8
		const numOperations = 50

		var wg sync.WaitGroup
		errCh := make(chan error, numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < numOperations; j++ {
					key := []byte(fmt.Sprintf("concurrent-%d-%d", id, j))
					if err := db.Write(ctx, key, key); err != nil {
						errCh <- err
						return
					}
					if _, err := db.Read(ctx, key); err != nil {
						errCh <- err
						return
					}
				}
			}(i)
		}
		wg.Wait()
		close(errCh)
		for err := range errCh {
			t.Errorf("goroutine error: %v", err)
		}
	})
}
