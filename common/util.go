package common

import (
	"fmt"
)

// ShortAddress shortens an address to its first 6 and last 4 characters,
// e.g. 0x1c7D...7238.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
}
