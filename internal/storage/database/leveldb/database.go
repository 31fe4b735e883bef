// Package leveldb backs database.DB with goleveldb, either on disk or on
// its in-memory skiplist.
package leveldb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/en-tropyc/blueshift/internal/storage/database"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var syncWrite = &opt.WriteOptions{Sync: true}

// DB is a goleveldb store on disk.
type DB struct {
	db *leveldb.DB
}

// Open opens or creates a leveldb store in dir.
func Open(dir string) (*DB, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb database %s: %w", dir, err)
	}
	return &DB{db: db}, nil
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, database.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return l.db.Put(key, value, syncWrite)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return l.db.Delete(key, syncWrite)
}

func (l *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			batch.Put(op.Key, op.Value)
		case database.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}
	return l.db.Write(batch, syncWrite)
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	return &Iterator{iter: l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)}, nil
}

func (l *DB) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// MemDB is a volatile store on goleveldb's memdb skiplist. The mutex makes
// batches atomic with respect to readers.
type MemDB struct {
	mu     sync.RWMutex
	db     *memdb.DB
	closed bool
}

// NewMemDB returns an empty in-memory store.
func NewMemDB() *MemDB {
	return &MemDB{db: memdb.New(comparer.DefaultComparer, 0)}
}

func (m *MemDB) Read(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, database.ErrDBClosed
	}
	val, err := m.db.Get(key)
	if err != nil {
		if errors.Is(err, memdb.ErrNotFound) {
			return nil, database.ErrKeyNotFound
		}
		return nil, err
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MemDB) Write(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return database.ErrDBClosed
	}
	return m.db.Put(key, value)
}

func (m *MemDB) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return database.ErrDBClosed
	}
	if err := m.db.Delete(key); err != nil && !errors.Is(err, memdb.ErrNotFound) {
		return err
	}
	return nil
}

// Batch applies ops to a copy of the store and swaps the copy in only when
// every op succeeded.
func (m *MemDB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return database.ErrDBClosed
	}

	staged, err := cloneRange(m.db, nil, nil)
	if err != nil {
		return err
	}
	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			err = staged.Put(op.Key, op.Value)
		case database.BatchDelete:
			if err = staged.Delete(op.Key); errors.Is(err, memdb.ErrNotFound) {
				err = nil
			}
		default:
			err = fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
		if err != nil {
			return err
		}
	}
	m.db = staged
	return nil
}

// cloneRange copies the entries of src in [start, end) into a new memdb.
func cloneRange(src *memdb.DB, start, end []byte) (*memdb.DB, error) {
	dst := memdb.New(comparer.DefaultComparer, src.Size())
	it := src.NewIterator(&util.Range{Start: start, Limit: end})
	defer it.Release()
	for it.Next() {
		if err := dst.Put(it.Key(), it.Value()); err != nil {
			return nil, err
		}
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return dst, nil
}

// Iterator returns a snapshot of [start, end) taken under the read lock.
func (m *MemDB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, database.ErrDBClosed
	}

	snap, err := cloneRange(m.db, start, end)
	if err != nil {
		return nil, err
	}
	return &Iterator{iter: snap.NewIterator(nil)}, nil
}

func (m *MemDB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.db.Reset()
	return nil
}

// Iterator adapts a goleveldb iterator to database.Iterator.
type Iterator struct {
	iter iterator.Iterator
}

func (it *Iterator) Next() bool {
	return it.iter.Next()
}

func (it *Iterator) Key() []byte {
	k := it.iter.Key()
	out := make([]byte, len(k))
	copy(out, k)
	return out
}

func (it *Iterator) Value() []byte {
	v := it.iter.Value()
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	it.iter.Release()
	return nil
}
