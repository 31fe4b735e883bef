package vault

import (
	"errors"
	"fmt"

	"github.com/en-tropyc/blueshift/internal/core/amount"
)

// Machine applies vault transitions through a LedgerAdapter.
type Machine struct {
	deriver *Deriver
	ledger  LedgerAdapter
}

func NewMachine(deriver *Deriver, ledger LedgerAdapter) *Machine {
	return &Machine{deriver: deriver, ledger: ledger}
}

// Deposit creates the owner's vault holding amt. It fails with
// ErrVaultAlreadyExists whenever a record exists, or value is already parked,
// at the owner's identifier, whatever amt is.
func (m *Machine) Deposit(owner Owner, claimed Identifier, amt amount.Amount) error {
	id, err := m.resolve(owner, claimed)
	if err != nil {
		return err
	}

	rec, err := m.ledger.LookupRecord(id)
	if err != nil {
		return fmt.Errorf("lookup vault %s: %w", id, err)
	}
	if rec != nil {
		return ErrVaultAlreadyExists
	}
	held, err := m.ledger.HeldBalance(id)
	if err != nil {
		return fmt.Errorf("read held balance of %s: %w", id, err)
	}
	if !held.IsZero() {
		return ErrVaultAlreadyExists
	}

	if amt.IsZero() {
		return fmt.Errorf("%w: zero", ErrInvalidAmount)
	}
	if floor := m.ledger.MinimumBalance(); amt < floor {
		return fmt.Errorf("%w: %d is below the minimum of %d", ErrInvalidAmount, amt.Units(), floor.Units())
	}

	if err := m.ledger.TransferIn(owner, id, amt); err != nil {
		if errors.Is(err, amount.ErrOverflow) {
			return fmt.Errorf("%w: %w", ErrInvalidAmount, err)
		}
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if err := m.ledger.CreateRecord(id, owner, amt); err != nil {
		return fmt.Errorf("create vault %s: %w", id, err)
	}

	return m.checkFunded(id, amt)
}

// Withdraw moves the whole vault balance back to the owner and removes the
// record. It returns the amount moved.
func (m *Machine) Withdraw(owner Owner, claimed Identifier) (amount.Amount, error) {
	id, err := m.resolve(owner, claimed)
	if err != nil {
		return 0, err
	}

	rec, err := m.ledger.LookupRecord(id)
	if err != nil {
		return 0, fmt.Errorf("lookup vault %s: %w", id, err)
	}
	if rec == nil {
		return 0, ErrVaultNotFound
	}
	if rec.Owner != owner {
		return 0, ErrUnauthorized
	}

	if err := m.ledger.TransferOut(id, owner, rec.Balance); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	if err := m.ledger.DestroyRecord(id); err != nil {
		return 0, fmt.Errorf("destroy vault %s: %w", id, err)
	}

	if err := m.checkAbsent(id); err != nil {
		return 0, err
	}
	return rec.Balance, nil
}

func (m *Machine) resolve(owner Owner, claimed Identifier) (Identifier, error) {
	id := m.deriver.Derive(owner)
	if id != claimed {
		return id, ErrInvalidIdentifier
	}
	return id, nil
}

// checkFunded requires the record and the held value to both equal amt.
func (m *Machine) checkFunded(id Identifier, amt amount.Amount) error {
	rec, err := m.ledger.LookupRecord(id)
	if err != nil {
		return fmt.Errorf("lookup vault %s: %w", id, err)
	}
	held, err := m.ledger.HeldBalance(id)
	if err != nil {
		return fmt.Errorf("read held balance of %s: %w", id, err)
	}
	if rec == nil || rec.Balance != amt || held != amt {
		return fmt.Errorf("%w: after deposit of %d", ErrInvariantViolated, amt.Units())
	}
	return nil
}

// checkAbsent requires no record and nothing held.
func (m *Machine) checkAbsent(id Identifier) error {
	rec, err := m.ledger.LookupRecord(id)
	if err != nil {
		return fmt.Errorf("lookup vault %s: %w", id, err)
	}
	held, err := m.ledger.HeldBalance(id)
	if err != nil {
		return fmt.Errorf("read held balance of %s: %w", id, err)
	}
	if rec != nil || !held.IsZero() {
		return fmt.Errorf("%w: vault %s survived withdrawal", ErrInvariantViolated, id)
	}
	return nil
}
