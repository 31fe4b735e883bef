package entry

// AccountRoot is the external balance and replay counter of an owner.
type AccountRoot struct {
	Account  [20]byte `codec:"account"`
	Balance  uint64   `codec:"balance"`
	Sequence uint64   `codec:"sequence"`
}

func (*AccountRoot) EntryType() Type { return TypeAccountRoot }

// Holding is native value parked at a derived address that is not an
// owner account.
type Holding struct {
	Amount uint64 `codec:"amount"`
}

func (*Holding) EntryType() Type { return TypeHolding }

// Vault is the custody record stored at a vault identifier.
type Vault struct {
	Owner   [20]byte `codec:"owner"`
	Balance uint64   `codec:"balance"`
}

func (*Vault) EntryType() Type { return TypeVault }
