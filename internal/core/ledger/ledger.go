// Package ledger holds the state that vault transactions read and write:
// a persistent Store, a buffered ApplyStateTable per transaction, and typed
// helpers over both.
package ledger

import (
	"errors"

	"github.com/en-tropyc/blueshift/internal/core/ledger/keylet"
)

var (
	ErrEntryExists       = errors.New("entry already exists")
	ErrEntryNotFound     = errors.New("entry not found")
	ErrNoAccount         = errors.New("account does not exist")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSequenceExhausted = errors.New("account sequence exhausted")
)

// View is read access to ledger state. Read returns nil data and no error
// when the entry is absent.
type View interface {
	Read(k keylet.Keylet) ([]byte, error)
	Exists(k keylet.Keylet) (bool, error)
}

// ApplyView is a View that can be modified.
type ApplyView interface {
	View
	Insert(k keylet.Keylet, data []byte) error
	Update(k keylet.Keylet, data []byte) error
	Erase(k keylet.Keylet) error
}
