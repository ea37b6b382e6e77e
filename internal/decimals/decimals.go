// Package decimals renders raw on-chain integer amounts as exact decimal
// strings. Scaling is pure base-10 arithmetic; floating point is never
// involved.
package decimals

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Format returns raw scaled down by 10^places as a minimal decimal string:
// no padding, no trailing fractional zeros, no rounding. A nil raw renders
// as "0".
func Format(raw *big.Int, places uint8) string {
	if raw == nil {
		return "0"
	}

	return decimal.NewFromBigInt(raw, -int32(places)).String()
}
