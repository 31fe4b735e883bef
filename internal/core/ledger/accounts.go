package ledger

import (
	"fmt"
	"math"

	"github.com/en-tropyc/blueshift/internal/core/amount"
	"github.com/en-tropyc/blueshift/internal/core/ledger/entry"
	"github.com/en-tropyc/blueshift/internal/core/ledger/keylet"
)

// readEntry decodes the entry at k into e. It reports false when absent.
func readEntry(v View, k keylet.Keylet, e entry.Entry) (bool, error) {
	data, err := v.Read(k)
	if err != nil || data == nil {
		return false, err
	}
	if err := entry.Decode(data, e); err != nil {
		return false, fmt.Errorf("%s %X: %w", k.Type, k.Key, err)
	}
	return true, nil
}

// writeEntry inserts e at k, or updates it when exists is set.
func writeEntry(v ApplyView, k keylet.Keylet, e entry.Entry, exists bool) error {
	data, err := entry.Encode(e)
	if err != nil {
		return err
	}
	if exists {
		return v.Update(k, data)
	}
	return v.Insert(k, data)
}

// ReadAccountRoot returns the account of owner, or nil when it does not exist.
func ReadAccountRoot(v View, owner [20]byte) (*entry.AccountRoot, error) {
	var root entry.AccountRoot
	found, err := readEntry(v, keylet.Account(owner), &root)
	if err != nil || !found {
		return nil, err
	}
	return &root, nil
}

// Credit adds amt to the owner's balance, creating the account at sequence 1
// when needed.
func Credit(v ApplyView, owner [20]byte, amt amount.Amount) error {
	root, err := ReadAccountRoot(v, owner)
	if err != nil {
		return err
	}
	exists := root != nil
	if !exists {
		root = &entry.AccountRoot{Account: owner, Sequence: 1}
	}
	bal, err := amount.Amount(root.Balance).Add(amt)
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}
	root.Balance = bal.Units()
	return writeEntry(v, keylet.Account(owner), root, exists)
}

// Debit removes amt from the owner's balance.
func Debit(v ApplyView, owner [20]byte, amt amount.Amount) error {
	root, err := ReadAccountRoot(v, owner)
	if err != nil {
		return err
	}
	if root == nil {
		return ErrNoAccount
	}
	bal, err := amount.Amount(root.Balance).Sub(amt)
	if err != nil {
		return fmt.Errorf("%w: balance %d, need %d", ErrInsufficientFunds, root.Balance, amt.Units())
	}
	root.Balance = bal.Units()
	return writeEntry(v, keylet.Account(owner), root, true)
}

// BumpSequence advances the owner's sequence by one.
func BumpSequence(v ApplyView, owner [20]byte) error {
	root, err := ReadAccountRoot(v, owner)
	if err != nil {
		return err
	}
	if root == nil {
		return ErrNoAccount
	}
	if root.Sequence == math.MaxUint64 {
		return ErrSequenceExhausted
	}
	root.Sequence++
	return writeEntry(v, keylet.Account(owner), root, true)
}

// ReadHolding returns the value parked at address, zero when none.
func ReadHolding(v View, address [32]byte) (amount.Amount, error) {
	var h entry.Holding
	found, err := readEntry(v, keylet.Holding(address), &h)
	if err != nil || !found {
		return 0, err
	}
	return amount.Amount(h.Amount), nil
}

// setHolding stores amt at address, erasing the entry when amt is zero.
func setHolding(v ApplyView, address [32]byte, amt amount.Amount) error {
	k := keylet.Holding(address)
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if amt.IsZero() {
		if !exists {
			return nil
		}
		return v.Erase(k)
	}
	return writeEntry(v, k, &entry.Holding{Amount: amt.Units()}, exists)
}
