package vault

//go:generate mockgen -destination=mock_vault/mock_adapter.go -package=mock_vault github.com/en-tropyc/blueshift/internal/core/vault LedgerAdapter

import "github.com/en-tropyc/blueshift/internal/core/amount"

// HoldingAccount is the custody record kept at a vault identifier.
type HoldingAccount struct {
	Owner   Owner
	Balance amount.Amount
}

// LedgerAdapter moves value and persists vault records. Each call is atomic;
// a Machine operation is atomic only when the adapter's writes are staged
// and committed together by the caller.
type LedgerAdapter interface {
	// TransferIn debits the owner's external balance and credits the value
	// held at the identifier.
	TransferIn(from Owner, to Identifier, amt amount.Amount) error
	// TransferOut debits the value held at the identifier and credits the
	// owner's external balance.
	TransferOut(from Identifier, to Owner, amt amount.Amount) error
	CreateRecord(id Identifier, owner Owner, initial amount.Amount) error
	DestroyRecord(id Identifier) error
	// LookupRecord returns nil when no record exists.
	LookupRecord(id Identifier) (*HoldingAccount, error)
	// HeldBalance is the value actually parked at the identifier.
	HeldBalance(id Identifier) (amount.Amount, error)
	// MinimumBalance is the smallest deposit that keeps a record viable.
	MinimumBalance() amount.Amount
}
