package testing

import (
	"github.com/en-tropyc/blueshift/internal/core/vault"
	"github.com/en-tropyc/blueshift/internal/crypto"
)

// Account is a test account with a deterministic keypair.
type Account struct {
	// Name identifies the account in failure messages.
	Name string

	Key   *crypto.KeyPair
	Owner vault.Owner

	// Address is the classic address of Owner.
	Address string
}

// NewAccount derives an account from name. The same name always yields the
// same keys, so tests are reproducible.
func NewAccount(name string) *Account {
	kp := crypto.KeyPairFromSeed([]byte(name))
	owner := vault.Owner(kp.AccountID())
	return &Account{
		Name:    name,
		Key:     kp,
		Owner:   owner,
		Address: owner.String(),
	}
}

func (a *Account) String() string {
	return a.Name + " (" + a.Address + ")"
}
