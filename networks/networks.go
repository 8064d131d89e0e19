package networks

import (
	"fmt"
	"strings"
)

// DefaultChain is used by commands where the chain argument is optional.
const DefaultChain = "ethereum"

// SupportedNames lists every accepted chain name, alternative names
// included, for usage messages.
func SupportedNames(r *Registry) string {
	parts := []string{}
	for _, c := range r.Chains() {
		if len(c.AlternativeNames) == 0 {
			parts = append(parts, c.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, strings.Join(c.AlternativeNames, ", ")))
	}
	return strings.Join(parts, ", ")
}
