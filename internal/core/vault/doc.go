// Package vault implements single-owner custody vaults.
//
// An owner deposits native value into a holding account whose identifier is
// derived from the owner, and later withdraws the whole balance, which
// removes the account again. A vault is either Absent or Funded; there is
// no top-up and no partial withdrawal.
//
// Every operation re-derives the identifier from the owner and rejects a
// caller-supplied identifier that does not match. Value movement and record
// persistence go through a LedgerAdapter. The state machine does no locking:
// callers must serialize operations that touch the same identifier and run
// each one inside a unit of work that is committed or discarded as a whole.
package vault
