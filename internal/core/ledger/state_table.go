package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/en-tropyc/blueshift/internal/core/ledger/keylet"
	"github.com/en-tropyc/blueshift/internal/storage/database"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Action   Action
	Original []byte // nil for inserts
	Current  []byte
}

// ApplyStateTable buffers every change a transaction makes on top of a base
// view. Nothing reaches the base until the caller commits Changes; dropping
// the table discards the transaction.
type ApplyStateTable struct {
	base  View
	items map[[32]byte]*TrackedEntry
}

func NewApplyStateTable(base View) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if e, ok := t.items[k.Key]; ok {
		if e.Action == ActionErase {
			return nil, nil
		}
		return e.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}
	return data, nil
}

func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if e, ok := t.items[k.Key]; ok {
		return e.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if e, ok := t.items[k.Key]; ok {
		if e.Action != ActionErase {
			return fmt.Errorf("insert %s %X: %w", k.Type, k.Key, ErrEntryExists)
		}
		// Re-inserting an erased entry becomes a modify
		e.Action = ActionModify
		e.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("insert %s %X: %w", k.Type, k.Key, ErrEntryExists)
	}

	t.items[k.Key] = &TrackedEntry{Action: ActionInsert, Current: data}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if e, ok := t.items[k.Key]; ok {
		if e.Action == ActionErase {
			return fmt.Errorf("update %s %X: %w", k.Type, k.Key, ErrEntryNotFound)
		}
		if e.Action == ActionCache {
			e.Action = ActionModify
		}
		e.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("update %s %X: %w", k.Type, k.Key, ErrEntryNotFound)
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if e, ok := t.items[k.Key]; ok {
		switch e.Action {
		case ActionErase:
			return fmt.Errorf("erase %s %X: %w", k.Type, k.Key, ErrEntryNotFound)
		case ActionInsert:
			// Insert then erase leaves the base untouched
			delete(t.items, k.Key)
		default:
			e.Action = ActionErase
		}
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("erase %s %X: %w", k.Type, k.Key, ErrEntryNotFound)
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// Changes returns the batch that applies this table to its base, ordered by
// key. Reads and no-op modifications are omitted.
func (t *ApplyStateTable) Changes() []database.BatchOperation {
	keys := make([][32]byte, 0, len(t.items))
	for key, e := range t.items {
		if e.Action == ActionCache {
			continue
		}
		if e.Action == ActionModify && bytes.Equal(e.Original, e.Current) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})

	ops := make([]database.BatchOperation, 0, len(keys))
	for _, key := range keys {
		e := t.items[key]
		k := make([]byte, len(key))
		copy(k, key[:])
		if e.Action == ActionErase {
			ops = append(ops, database.BatchOperation{Type: database.BatchDelete, Key: k})
			continue
		}
		ops = append(ops, database.BatchOperation{Type: database.BatchPut, Key: k, Value: e.Current})
	}
	return ops
}

// Touched reports how many entries the transaction inserted, modified or
// erased.
func (t *ApplyStateTable) Touched() (inserted, modified, erased int) {
	for _, e := range t.items {
		switch e.Action {
		case ActionInsert:
			inserted++
		case ActionModify:
			if !bytes.Equal(e.Original, e.Current) {
				modified++
			}
		case ActionErase:
			erased++
		}
	}
	return inserted, modified, erased
}
