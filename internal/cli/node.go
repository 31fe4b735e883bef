package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/engine"
	"github.com/en-tropyc/blueshift/internal/core/ledger"
	"github.com/en-tropyc/blueshift/internal/crypto"
	"github.com/en-tropyc/blueshift/internal/logger"
	"github.com/en-tropyc/blueshift/internal/storage/journal"
	"github.com/en-tropyc/blueshift/internal/storage/nodestore"
)

// node is an engine opened from the loaded configuration.
type node struct {
	engine  *engine.Engine
	store   *ledger.Store
	journal *journal.Journal
}

func openNode(ctx context.Context) (*node, error) {
	programID, err := cfg.Vault.GetProgramID()
	if err != nil {
		return nil, err
	}

	db, err := nodestore.Open(cfg.NodeDB.Type, cfg.NodeDB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open node_db: %w", err)
	}
	store, err := ledger.NewStore(db, cfg.NodeDB.CacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	if cfg.NodeDB.IsMemory() {
		log.Warn().Msg("node_db type is memory; ledger state is discarded on exit")
	}

	n := &node{store: store}
	opts := []engine.Option{engine.WithLogger(logger.Component(log, "engine"))}
	if cfg.Journal.IsEnabled() {
		j, err := journal.Open(ctx, cfg.Journal.Driver, cfg.Journal.DSN)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		n.journal = j
		opts = append(opts, engine.WithJournal(j))
	}

	n.engine = engine.New(store, engine.Config{
		ProgramID:      programID,
		MinimumBalance: amount.Amount(cfg.Vault.MinimumBalance),
		BaseFee:        amount.Amount(cfg.Vault.BaseFee),
	}, opts...)
	return n, nil
}

func (n *node) Close() error {
	var errs []error
	if n.journal != nil {
		errs = append(errs, n.journal.Close())
	}
	errs = append(errs, n.store.Close())
	return errors.Join(errs...)
}

// keyFromFlags resolves --secret (hex private key) or --seed (passphrase).
func keyFromFlags(secret, seed string) (*crypto.KeyPair, error) {
	switch {
	case secret != "" && seed != "":
		return nil, fmt.Errorf("use either --secret or --seed, not both")
	case secret != "":
		return crypto.KeyPairFromHex(strings.TrimSpace(secret))
	case seed != "":
		return crypto.KeyPairFromSeed([]byte(seed)), nil
	default:
		return nil, fmt.Errorf("a signing key is required: pass --secret or --seed")
	}
}
