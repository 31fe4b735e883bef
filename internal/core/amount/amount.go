// Package amount implements the native value unit held by accounts and vaults.
package amount

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Amount is a quantity of native value in indivisible units.
type Amount uint64

// UnitsPerCoin is the number of units in one whole coin.
const UnitsPerCoin Amount = 1_000_000_000

// coinDecimals is log10(UnitsPerCoin).
const coinDecimals = 9

var (
	ErrOverflow  = errors.New("amount overflow")
	ErrUnderflow = errors.New("amount underflow")
	ErrInvalid   = errors.New("invalid amount")
)

// Add returns a+b, failing instead of wrapping.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b, failing instead of wrapping.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

func (a Amount) IsZero() bool {
	return a == 0
}

func (a Amount) Units() uint64 {
	return uint64(a)
}

// Coins returns the amount as a decimal number of whole coins.
func (a Amount) Coins() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -coinDecimals)
}

// String formats the amount in coins, e.g. "1.5".
func (a Amount) String() string {
	return a.Coins().String()
}

// FromCoins converts a whole number of coins to units.
func FromCoins(coins uint64) (Amount, error) {
	if coins > uint64(^Amount(0)/UnitsPerCoin) {
		return 0, ErrOverflow
	}
	return Amount(coins) * UnitsPerCoin, nil
}

// Parse reads a decimal coin string ("0.5", "12") into units. At most nine
// fractional digits are accepted.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative value %q", ErrInvalid, s)
	}
	units := d.Shift(coinDecimals)
	if !units.Equal(units.Truncate(0)) {
		return 0, fmt.Errorf("%w: more than %d decimal places in %q", ErrInvalid, coinDecimals, s)
	}
	bi := units.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return Amount(bi.Uint64()), nil
}
