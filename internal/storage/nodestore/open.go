// Package nodestore opens the key-value store that holds ledger state.
package nodestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/en-tropyc/blueshift/internal/storage/database"
	"github.com/en-tropyc/blueshift/internal/storage/database/bbolt"
	"github.com/en-tropyc/blueshift/internal/storage/database/leveldb"
	"github.com/en-tropyc/blueshift/internal/storage/database/pebble"
)

// Backend names accepted by Open.
const (
	BackendPebble  = "pebble"
	BackendBBolt   = "bbolt"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// Backends lists every supported backend name.
var Backends = []string{BackendPebble, BackendBBolt, BackendLevelDB, BackendMemory}

// Open opens the named backend rooted at path. The memory backend ignores
// path. Directories are created as needed.
func Open(backend, path string) (database.DB, error) {
	switch strings.ToLower(backend) {
	case BackendMemory:
		return leveldb.NewMemDB(), nil
	case BackendPebble:
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
		return pebble.Open(path)
	case BackendLevelDB:
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
		return leveldb.Open(path)
	case BackendBBolt:
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
		return bbolt.Open(filepath.Join(path, "ledger.db"), bbolt.DefaultBucket)
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnknownBackend, backend)
	}
}
