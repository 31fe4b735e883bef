package vault

import "github.com/en-tropyc/blueshift/internal/core/ledger/keylet"

// Deriver maps owners to vault identifiers under one program ID.
type Deriver struct {
	programID [32]byte
}

func NewDeriver(programID [32]byte) *Deriver {
	return &Deriver{programID: programID}
}

// Derive returns SHA-512-half('V' || "vault" || programID || owner).
func (d *Deriver) Derive(owner Owner) Identifier {
	return Identifier(keylet.Vault(d.programID, owner).Key)
}
