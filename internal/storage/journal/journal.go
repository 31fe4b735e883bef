// Package journal keeps an append-only relational record of every submitted
// vault transaction, applied or not. SQLite and PostgreSQL are supported.
package journal

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Record is one journal row.
type Record struct {
	Hash      [32]byte
	Type      string
	Owner     string
	Vault     string
	Sequence  uint64
	Amount    uint64
	Fee       uint64
	Result    string
	AppliedAt time.Time
}

// Journal writes Records to a SQL database.
type Journal struct {
	mu     sync.RWMutex
	db     *sql.DB
	driver string
}

// Open connects to dsn with driver and creates the schema when missing.
func Open(ctx context.Context, driver, dsn string) (*Journal, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, queryError("open", err)
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, queryError("ping", err)
	}

	j := &Journal{db: db, driver: driver}
	if err := j.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS vault_transactions (
			id         ` + j.serialType() + `,
			tx_hash    TEXT NOT NULL,
			tx_type    TEXT NOT NULL,
			owner      TEXT NOT NULL,
			vault_id   TEXT NOT NULL,
			sequence   BIGINT NOT NULL,
			amount     BIGINT NOT NULL,
			fee        BIGINT NOT NULL,
			result     TEXT NOT NULL,
			applied_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS vault_transactions_owner_idx ON vault_transactions (owner, id)`,
	}
	for _, stmt := range stmts {
		if _, err := j.db.ExecContext(ctx, stmt); err != nil {
			return queryError("init_schema", err)
		}
	}
	return nil
}

func (j *Journal) serialType() string {
	if j.driver == DriverPostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// rebind rewrites ? placeholders into $n for PostgreSQL.
func (j *Journal) rebind(query string) string {
	if j.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Append stores rec.
func (j *Journal) Append(ctx context.Context, rec Record) error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.db == nil {
		return ErrClosed
	}

	// Amounts are stored as signed 64-bit integers; both drivers lack uint64.
	query := j.rebind(`INSERT INTO vault_transactions
		(tx_hash, tx_type, owner, vault_id, sequence, amount, fee, result, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := j.db.ExecContext(ctx, query,
		fmt.Sprintf("%X", rec.Hash), rec.Type, rec.Owner, rec.Vault,
		int64(rec.Sequence), int64(rec.Amount), int64(rec.Fee), rec.Result,
		rec.AppliedAt.UTC().UnixNano())
	if err != nil {
		return queryError("append", err)
	}
	return nil
}

// History returns the owner's records, newest first. A limit of zero or less
// returns all of them.
func (j *Journal) History(ctx context.Context, owner string, limit int) ([]Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.db == nil {
		return nil, ErrClosed
	}

	query := `SELECT tx_hash, tx_type, owner, vault_id, sequence, amount, fee, result, applied_at
		FROM vault_transactions WHERE owner = ? ORDER BY id DESC`
	args := []any{owner}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, j.rebind(query), args...)
	if err != nil {
		return nil, queryError("history", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec                  Record
			hash                 string
			seq, amt, fee, nanos int64
		)
		if err := rows.Scan(&hash, &rec.Type, &rec.Owner, &rec.Vault, &seq, &amt, &fee, &rec.Result, &nanos); err != nil {
			return nil, queryError("history", err)
		}
		raw, err := hex.DecodeString(hash)
		if err != nil || len(raw) != len(rec.Hash) {
			return nil, queryError("history", fmt.Errorf("bad hash %q", hash))
		}
		copy(rec.Hash[:], raw)
		rec.Sequence = uint64(seq)
		rec.Amount = uint64(amt)
		rec.Fee = uint64(fee)
		rec.AppliedAt = time.Unix(0, nanos).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("history", err)
	}
	return out, nil
}

// Close releases the connection pool. Later calls return ErrClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
