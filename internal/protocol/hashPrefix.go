package protocol

// makeHashPrefix combines three ASCII characters into a 4-byte prefix with the last byte set to zero.
func makeHashPrefix(a, b, c byte) [4]byte {
	return [4]byte{a, b, c, 0}
}

// Hash prefixes keep digests of different object kinds in separate domains.
var (
	HashPrefixTransactionID = makeHashPrefix('T', 'X', 'N') // Transaction ID
	HashPrefixTxSign        = makeHashPrefix('S', 'T', 'X') // Transaction for signing
)
