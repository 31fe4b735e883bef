package vault

import "errors"

var (
	ErrInvalidIdentifier  = errors.New("InvalidIdentifier: claimed identifier does not match the owner's vault")
	ErrVaultAlreadyExists = errors.New("VaultAlreadyExists: the owner already has a vault")
	ErrVaultNotFound      = errors.New("VaultNotFound: the owner has no vault")
	ErrUnauthorized       = errors.New("Unauthorized: caller does not own the vault")
	ErrInvalidAmount      = errors.New("InvalidAmount: amount is zero, overflows or is below the minimum balance")
	ErrTransferFailed     = errors.New("TransferFailed: value could not be moved")
	ErrInvariantViolated  = errors.New("InvariantViolated: vault record disagrees with held value")
)
