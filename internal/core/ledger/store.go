package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/en-tropyc/blueshift/internal/core/ledger/entry"
	"github.com/en-tropyc/blueshift/internal/core/ledger/keylet"
	"github.com/en-tropyc/blueshift/internal/storage/database"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is committed ledger state in a key-value database, fronted by an LRU
// cache of encoded entries. Entries are stored under their 32-byte keylet key.
type Store struct {
	mu    sync.RWMutex
	db    database.DB
	cache *lru.Cache[[32]byte, []byte]
}

// NewStore wraps db. A cacheSize of zero disables caching.
func NewStore(db database.DB, cacheSize int) (*Store, error) {
	s := &Store{db: db}
	if cacheSize > 0 {
		cache, err := lru.New[[32]byte, []byte](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create entry cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Read returns the encoded entry at k, or nil when absent.
func (s *Store) Read(ctx context.Context, k keylet.Keylet) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cache != nil {
		if data, ok := s.cache.Get(k.Key); ok {
			return data, nil
		}
	}

	data, err := s.db.Read(ctx, k.Key[:])
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s %X: %w", k.Type, k.Key, err)
	}
	if s.cache != nil {
		s.cache.Add(k.Key, data)
	}
	return data, nil
}

// Apply writes ops as one atomic batch and refreshes the cache.
func (s *Store) Apply(ctx context.Context, ops []database.BatchOperation) error {
	if len(ops) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, ops); err != nil {
		if s.cache != nil {
			s.cache.Purge()
		}
		return fmt.Errorf("commit %d ledger changes: %w", len(ops), err)
	}

	if s.cache != nil {
		for _, op := range ops {
			var key [32]byte
			copy(key[:], op.Key)
			if op.Type == database.BatchDelete {
				s.cache.Remove(key)
			} else {
				s.cache.Add(key, op.Value)
			}
		}
	}
	return nil
}

// write commits ops, skipping the batch for a single change.
func (s *Store) write(ctx context.Context, ops []database.BatchOperation) error {
	if len(ops) > 1 {
		return s.db.Batch(ctx, ops)
	}
	op := ops[0]
	switch op.Type {
	case database.BatchPut:
		return s.db.Write(ctx, op.Key, op.Value)
	case database.BatchDelete:
		return s.db.Delete(ctx, op.Key)
	default:
		return fmt.Errorf("unknown batch operation type: %d", op.Type)
	}
}

// ForEach calls fn for every committed entry in key order. Iteration stops
// at the first error fn returns.
func (s *Store) ForEach(ctx context.Context, fn func(key [32]byte, typ entry.Type, data []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	iter, err := s.db.Iterator(ctx, nil, nil)
	if err != nil {
		return fmt.Errorf("iterate ledger: %w", err)
	}
	defer iter.Close()

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var key [32]byte
		if len(iter.Key()) != len(key) {
			return fmt.Errorf("iterate ledger: unexpected key %X", iter.Key())
		}
		copy(key[:], iter.Key())
		data := iter.Value()
		typ, err := entry.TypeOf(data)
		if err != nil {
			return fmt.Errorf("entry %X: %w", key, err)
		}
		if err := fn(key, typ, data); err != nil {
			return err
		}
	}
	return iter.Error()
}

// View returns a read-only View of committed state bound to ctx.
func (s *Store) View(ctx context.Context) View {
	return &storeView{store: s, ctx: ctx}
}

func (s *Store) Close() error {
	return s.db.Close()
}

type storeView struct {
	store *Store
	ctx   context.Context
}

func (v *storeView) Read(k keylet.Keylet) ([]byte, error) {
	return v.store.Read(v.ctx, k)
}

func (v *storeView) Exists(k keylet.Keylet) (bool, error) {
	data, err := v.store.Read(v.ctx, k)
	return data != nil, err
}
