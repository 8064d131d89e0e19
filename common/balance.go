package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackedAddress is one monitored (address, chain) pair. The pair is unique
// within a Configuration; entries are only ever added, removed or replaced
// as a whole.
type TrackedAddress struct {
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Chain     string          `json:"chain"`
	Threshold decimal.Decimal `json:"threshold"`
}

// Label is the display name, falling back to the shortened address.
func (t TrackedAddress) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return ShortAddress(t.Address)
}

// Matches reports whether t is address on chain, ignoring address case.
func (t TrackedAddress) Matches(address, chain string) bool {
	return t.Chain == chain && SameAddress(t.Address, address)
}

// HasThreshold reports whether alerting is enabled for this address.
func (t TrackedAddress) HasThreshold() bool {
	return t.Threshold.IsPositive()
}

// Configuration is the persisted set of monitored addresses, in the order
// they were added.
type Configuration struct {
	Addresses []TrackedAddress `json:"addresses"`
}

// Find returns the index of the entry matching (address, chain) or -1.
func (c Configuration) Find(address, chain string) int {
	for i, t := range c.Addresses {
		if t.Matches(address, chain) {
			return i
		}
	}
	return -1
}

// BalanceRecord is one observation appended to the history by a check.
// Change is the difference to the previous record of the same pair, zero for
// the first record.
type BalanceRecord struct {
	Timestamp        time.Time       `json:"timestamp"`
	Address          string          `json:"address"`
	Chain            string          `json:"chain"`
	Balance          decimal.Decimal `json:"balance"`
	Change           decimal.Decimal `json:"change"`
	FormattedBalance string          `json:"formattedBalance"`
	CheckID          string          `json:"checkId,omitempty"`
}

// Matches reports whether r was taken for address on chain.
func (r BalanceRecord) Matches(address, chain string) bool {
	return r.Chain == chain && SameAddress(r.Address, address)
}

// History is the persisted, chronologically ordered list of records.
type History struct {
	Records []BalanceRecord `json:"records"`
}

// ForPair returns the records of one (address, chain) pair, oldest first.
func (h History) ForPair(address, chain string) []BalanceRecord {
	result := []BalanceRecord{}
	for _, r := range h.Records {
		if r.Matches(address, chain) {
			result = append(result, r)
		}
	}
	return result
}

// Latest returns the most recent record of a pair.
func (h History) Latest(address, chain string) (BalanceRecord, bool) {
	for i := len(h.Records) - 1; i >= 0; i-- {
		if h.Records[i].Matches(address, chain) {
			return h.Records[i], true
		}
	}
	return BalanceRecord{}, false
}
