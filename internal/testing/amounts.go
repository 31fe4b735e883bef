package testing

import "github.com/en-tropyc/blueshift/internal/core/amount"

// Coins converts whole coins to an amount. It panics on overflow.
func Coins(n uint64) amount.Amount {
	a, err := amount.FromCoins(n)
	if err != nil {
		panic(err)
	}
	return a
}

// Units is an amount of n base units.
func Units(n uint64) amount.Amount {
	return amount.Amount(n)
}
