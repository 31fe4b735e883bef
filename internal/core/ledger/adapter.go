package ledger

import (
	"fmt"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/ledger/entry"
	"github.com/en-tropyc/blueshift/internal/core/ledger/keylet"
	"github.com/en-tropyc/blueshift/internal/core/vault"
)

// Adapter implements vault.LedgerAdapter on an ApplyView. Owners' external
// value lives in their AccountRoot, value parked at a vault in a Holding
// entry, and the vault record itself at the vault identifier.
type Adapter struct {
	view    ApplyView
	minimum amount.Amount
}

var _ vault.LedgerAdapter = (*Adapter)(nil)

func NewAdapter(view ApplyView, minimum amount.Amount) *Adapter {
	return &Adapter{view: view, minimum: minimum}
}

func vaultKeylet(id vault.Identifier) keylet.Keylet {
	return keylet.Keylet{Type: entry.TypeVault, Key: id}
}

func (a *Adapter) TransferIn(from vault.Owner, to vault.Identifier, amt amount.Amount) error {
	held, err := ReadHolding(a.view, to)
	if err != nil {
		return err
	}
	newHeld, err := held.Add(amt)
	if err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	if err := Debit(a.view, from, amt); err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}
	return setHolding(a.view, to, newHeld)
}

func (a *Adapter) TransferOut(from vault.Identifier, to vault.Owner, amt amount.Amount) error {
	held, err := ReadHolding(a.view, from)
	if err != nil {
		return err
	}
	rest, err := held.Sub(amt)
	if err != nil {
		return fmt.Errorf("%w: %s holds %d, need %d", ErrInsufficientFunds, from, held.Units(), amt.Units())
	}
	if err := Credit(a.view, to, amt); err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	return setHolding(a.view, from, rest)
}

func (a *Adapter) CreateRecord(id vault.Identifier, owner vault.Owner, initial amount.Amount) error {
	return writeEntry(a.view, vaultKeylet(id), &entry.Vault{Owner: owner, Balance: initial.Units()}, false)
}

func (a *Adapter) DestroyRecord(id vault.Identifier) error {
	return a.view.Erase(vaultKeylet(id))
}

func (a *Adapter) LookupRecord(id vault.Identifier) (*vault.HoldingAccount, error) {
	var v entry.Vault
	found, err := readEntry(a.view, vaultKeylet(id), &v)
	if err != nil || !found {
		return nil, err
	}
	return &vault.HoldingAccount{Owner: v.Owner, Balance: amount.Amount(v.Balance)}, nil
}

func (a *Adapter) HeldBalance(id vault.Identifier) (amount.Amount, error) {
	return ReadHolding(a.view, id)
}

func (a *Adapter) MinimumBalance() amount.Amount {
	return a.minimum
}
