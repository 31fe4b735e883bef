package vault_test

import (
	"errors"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/vault"
)

var errNoFunds = errors.New("insufficient external balance")

// fakeLedger is a map-backed LedgerAdapter. It applies writes directly, so
// tests only use it for sequences that succeed or fail before mutating.
type fakeLedger struct {
	minimum  amount.Amount
	external map[vault.Owner]amount.Amount
	held     map[vault.Identifier]amount.Amount
	records  map[vault.Identifier]vault.HoldingAccount
}

func newFakeLedger(minimum amount.Amount) *fakeLedger {
	return &fakeLedger{
		minimum:  minimum,
		external: make(map[vault.Owner]amount.Amount),
		held:     make(map[vault.Identifier]amount.Amount),
		records:  make(map[vault.Identifier]vault.HoldingAccount),
	}
}

func (f *fakeLedger) TransferIn(from vault.Owner, to vault.Identifier, amt amount.Amount) error {
	bal := f.external[from]
	if bal < amt {
		return errNoFunds
	}
	held, err := f.held[to].Add(amt)
	if err != nil {
		return err
	}
	f.external[from] = bal - amt
	f.held[to] = held
	return nil
}

func (f *fakeLedger) TransferOut(from vault.Identifier, to vault.Owner, amt amount.Amount) error {
	held := f.held[from]
	if held < amt {
		return errNoFunds
	}
	bal, err := f.external[to].Add(amt)
	if err != nil {
		return err
	}
	f.external[to] = bal
	if held == amt {
		delete(f.held, from)
	} else {
		f.held[from] = held - amt
	}
	return nil
}

func (f *fakeLedger) CreateRecord(id vault.Identifier, owner vault.Owner, initial amount.Amount) error {
	if _, ok := f.records[id]; ok {
		return errors.New("record exists")
	}
	f.records[id] = vault.HoldingAccount{Owner: owner, Balance: initial}
	return nil
}

func (f *fakeLedger) DestroyRecord(id vault.Identifier) error {
	if _, ok := f.records[id]; !ok {
		return errors.New("record missing")
	}
	delete(f.records, id)
	return nil
}

func (f *fakeLedger) LookupRecord(id vault.Identifier) (*vault.HoldingAccount, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeLedger) HeldBalance(id vault.Identifier) (amount.Amount, error) {
	return f.held[id], nil
}

func (f *fakeLedger) MinimumBalance() amount.Amount {
	return f.minimum
}
