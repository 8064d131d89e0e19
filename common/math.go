package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// HexToBig parses an unsigned hex integer as returned by a node, either a
// quantity ("0xf4240") or a full 32-byte word with leading zeros. An empty
// "0x" is zero. Values wider than 256 bits are rejected.
func HexToBig(hex string) (*big.Int, error) {
	h := strip0x(strings.TrimSpace(hex))
	if h == "" {
		return big.NewInt(0), nil
	}
	if strings.IndexFunc(h, notHexDigit) >= 0 {
		return nil, fmt.Errorf("invalid hex integer %q", hex)
	}
	result, ok := new(big.Int).SetString(h, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex integer %q", hex)
	}
	if result.BitLen() > 256 {
		return nil, fmt.Errorf("hex integer %q exceeds 256 bits", hex)
	}
	return result, nil
}

// SetString also takes signs and underscores, so those are screened first.
func notHexDigit(r rune) bool {
	return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
}

// BigToDecimal scales a raw token amount down by its number of decimals.
// Example:
// - BigToDecimal(1000000, 6) = 1
// - BigToDecimal(1234567, 6) = 1.234567
func BigToDecimal(raw *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -decimals)
}

// FormatAmount renders an amount with 2 decimals, the precision used in
// history records and every report.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatChange is FormatAmount with an explicit sign for positive values.
func FormatChange(change decimal.Decimal) string {
	if change.IsPositive() {
		return "+" + FormatAmount(change)
	}
	return FormatAmount(change)
}
