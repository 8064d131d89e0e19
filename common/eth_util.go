package common

import (
	"errors"
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidAddress is returned when an address is not 20 bytes of hex.
var ErrInvalidAddress = errors.New("invalid address")

// BalanceOfSelector is the 4-byte function selector of the ERC20
// balanceOf(address) view, 0x70a08231.
var BalanceOfSelector = crypto.Keccak256([]byte("balanceOf(address)"))[:4]

// AddressBytes decodes a 20-byte hex address. The 0x prefix is optional and
// the checksum is not verified.
func AddressBytes(address string) ([]byte, error) {
	h := strip0x(strings.TrimSpace(address))
	if len(h) != 2*ethcommon.AddressLength {
		return nil, fmt.Errorf(
			"%w: %q has %d hex characters, expected %d",
			ErrInvalidAddress, address, len(h), 2*ethcommon.AddressLength,
		)
	}
	b, err := hexutil.Decode("0x" + h)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrInvalidAddress, address, err)
	}
	return b, nil
}

// EncodeBalanceOf builds the eth_call data for balanceOf(address): the
// selector followed by the address left padded to a 32-byte word.
//
// Example:
//   - EncodeBalanceOf("0xdead...beef") = "0x70a08231000000000000000000000000dead...beef"
func EncodeBalanceOf(address string) (string, error) {
	addr, err := AddressBytes(address)
	if err != nil {
		return "", err
	}
	data := make([]byte, 0, len(BalanceOfSelector)+32)
	data = append(data, BalanceOfSelector...)
	data = append(data, ethcommon.LeftPadBytes(addr, 32)...)
	return hexutil.Encode(data), nil
}

// IsAddress reports whether s is a syntactically valid hex address.
func IsAddress(s string) bool {
	return ethcommon.IsHexAddress(strings.TrimSpace(s))
}

// SameAddress compares two hex addresses ignoring case and the 0x prefix.
func SameAddress(a, b string) bool {
	return strings.EqualFold(
		strip0x(strings.TrimSpace(a)),
		strip0x(strings.TrimSpace(b)),
	)
}

func strip0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
