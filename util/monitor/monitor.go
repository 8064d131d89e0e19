package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tranvictor/balancewatch/common"
	"github.com/tranvictor/balancewatch/networks"
	"github.com/tranvictor/balancewatch/util/store"
)

const DefaultHistoryLimit = 10

type Status string

const (
	StatusOK    Status = "ok"
	StatusAlert Status = "alert"
	StatusError Status = "error"
)

type BalanceResolver interface {
	ResolveBalance(ctx context.Context, address, chain string) (decimal.Decimal, error)
}

// Result is the outcome of resolving one tracked address.
type Result struct {
	Tracked  common.TrackedAddress
	Balance  decimal.Decimal
	Previous *common.BalanceRecord
	Delta    decimal.Decimal
	Status   Status
	Err      error
}

func (r Result) FirstCheck() bool {
	return r.Previous == nil
}

type CheckReport struct {
	CheckID   string
	Timestamp time.Time
	Results   []Result
}

func (r *CheckReport) count(st Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == st {
			n++
		}
	}
	return n
}

func (r *CheckReport) Alerts() int {
	return r.count(StatusAlert)
}

func (r *CheckReport) Errors() int {
	return r.count(StatusError)
}

type RemoveResult struct {
	Removed   int
	Remaining int
}

type ChainTotal struct {
	Chain     string
	Addresses int
	Total     decimal.Decimal
}

type Summary struct {
	Tracked      []common.TrackedAddress
	TotalRecords int
	Total        decimal.Decimal
	ByChain      []ChainTotal
	Balances     []Result
	Failed       []Result
}

// Monitor ties the balance resolver to the store. A Monitor performs one
// sequential pass per operation.
type Monitor struct {
	store    *store.Store
	resolver BalanceResolver
	chains   *networks.Registry
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewMonitor(s *store.Store, resolver BalanceResolver, chains *networks.Registry, logger *zap.Logger) *Monitor {
	if chains == nil {
		chains = networks.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    s,
		resolver: resolver,
		chains:   chains,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SetClock replaces the time source used to stamp records.
func (m *Monitor) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Monitor) canonicalChain(chain string) (string, error) {
	c, err := m.chains.GetChain(chain)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

// Check resolves every tracked address in configuration order and appends a
// record for each success. A failed resolution is reported in the result and
// does not stop the pass. Store failures abort it.
func (m *Monitor) Check(ctx context.Context) (*CheckReport, error) {
	cfg, err := m.store.LoadConfig()
	if err != nil {
		return nil, err
	}
	history, err := m.store.LoadHistory()
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		CheckID:   m.newID(),
		Timestamp: m.now().UTC(),
		Results:   make([]Result, 0, len(cfg.Addresses)),
	}
	for _, t := range cfg.Addresses {
		// hand-edited entries may name the chain by an alternative name
		if chain, err := m.canonicalChain(t.Chain); err == nil {
			t.Chain = chain
		}
		res := Result{Tracked: t, Status: StatusOK}
		balance, err := m.resolver.ResolveBalance(ctx, t.Address, t.Chain)
		if err != nil {
			m.logger.Warn("couldn't resolve balance",
				zap.String("address", t.Address),
				zap.String("chain", t.Chain),
				zap.Error(err),
			)
			res.Status = StatusError
			res.Err = err
			report.Results = append(report.Results, res)
			continue
		}
		res.Balance = balance
		if prev, found := history.Latest(t.Address, t.Chain); found {
			res.Previous = &prev
			res.Delta = balance.Sub(prev.Balance)
		}
		if t.HasThreshold() && balance.LessThan(t.Threshold) {
			res.Status = StatusAlert
		}

		rec := common.BalanceRecord{
			Timestamp:        m.now().UTC(),
			Address:          t.Address,
			Chain:            t.Chain,
			Balance:          balance,
			Change:           res.Delta,
			FormattedBalance: common.FormatAmount(balance),
			CheckID:          report.CheckID,
		}
		if err := m.store.AppendRecord(rec); err != nil {
			return report, fmt.Errorf("record balance of %s on %s: %w", t.Address, t.Chain, err)
		}
		report.Results = append(report.Results, res)
	}
	m.logger.Debug("check done",
		zap.String("checkId", report.CheckID),
		zap.Int("addresses", len(report.Results)),
		zap.Int("alerts", report.Alerts()),
		zap.Int("errors", report.Errors()),
	)
	return report, nil
}

// AddAddress validates t and appends it to the configuration. The chain is
// stored under its canonical name.
func (m *Monitor) AddAddress(t common.TrackedAddress) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Address = strings.TrimSpace(t.Address)
	if !common.IsAddress(t.Address) {
		return &ConfigurationError{Err: fmt.Errorf("%w: %s", common.ErrInvalidAddress, t.Address)}
	}
	chain, err := m.canonicalChain(t.Chain)
	if err != nil {
		return err
	}
	t.Chain = chain
	if t.Threshold.IsNegative() {
		return &ConfigurationError{Err: fmt.Errorf("threshold must not be negative, got %s", t.Threshold)}
	}

	return m.store.UpdateConfig(func(cfg *common.Configuration) error {
		if cfg.Find(t.Address, t.Chain) >= 0 {
			return &ConfigurationError{Err: fmt.Errorf("%s on %s: %w", t.Address, t.Chain, ErrAlreadyTracked)}
		}
		cfg.Addresses = append(cfg.Addresses, t)
		m.logger.Debug("tracking address", zap.String("address", t.Address), zap.String("chain", t.Chain))
		return nil
	})
}

// RemoveAddress drops every entry matching (address, chain). The result is
// saved even when no entry is left.
func (m *Monitor) RemoveAddress(address, chain string) (RemoveResult, error) {
	chain, err := m.canonicalChain(chain)
	if err != nil {
		return RemoveResult{}, err
	}
	result := RemoveResult{}
	err = m.store.UpdateConfig(func(cfg *common.Configuration) error {
		kept := make([]common.TrackedAddress, 0, len(cfg.Addresses))
		for _, t := range cfg.Addresses {
			if t.Matches(address, chain) {
				continue
			}
			kept = append(kept, t)
		}
		result.Removed = len(cfg.Addresses) - len(kept)
		result.Remaining = len(kept)
		cfg.Addresses = kept
		return nil
	})
	if err != nil {
		return RemoveResult{}, err
	}
	return result, nil
}

// History returns up to limit records of (address, chain), newest first.
func (m *Monitor) History(address, chain string, limit int) ([]common.BalanceRecord, error) {
	chain, err := m.canonicalChain(chain)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h, err := m.store.LoadHistory()
	if err != nil {
		return nil, err
	}
	records := h.ForPair(address, chain)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w for %s on %s", ErrNoHistory, address, chain)
	}
	if len(records) > limit {
		records = records[len(records)-limit:]
	}
	result := make([]common.BalanceRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		result = append(result, records[i])
	}
	return result, nil
}

// Summary resolves the current balance of every tracked address and totals
// them overall and per chain. Nothing is written to the history.
func (m *Monitor) Summary(ctx context.Context) (*Summary, error) {
	cfg, err := m.store.LoadConfig()
	if err != nil {
		return nil, err
	}
	h, err := m.store.LoadHistory()
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Tracked:      cfg.Addresses,
		TotalRecords: len(h.Records),
		Total:        decimal.Zero,
		ByChain:      []ChainTotal{},
		Balances:     []Result{},
		Failed:       []Result{},
	}
	index := map[string]int{}
	for _, t := range cfg.Addresses {
		if _, found := index[t.Chain]; !found {
			index[t.Chain] = len(s.ByChain)
			s.ByChain = append(s.ByChain, ChainTotal{Chain: t.Chain, Total: decimal.Zero})
		}
		balance, err := m.resolver.ResolveBalance(ctx, t.Address, t.Chain)
		if err != nil {
			m.logger.Warn("couldn't resolve balance",
				zap.String("address", t.Address),
				zap.String("chain", t.Chain),
				zap.Error(err),
			)
			s.Failed = append(s.Failed, Result{Tracked: t, Status: StatusError, Err: err})
			continue
		}
		st := StatusOK
		if t.HasThreshold() && balance.LessThan(t.Threshold) {
			st = StatusAlert
		}
		s.Balances = append(s.Balances, Result{Tracked: t, Balance: balance, Status: st})
		s.Total = s.Total.Add(balance)
		ct := &s.ByChain[index[t.Chain]]
		ct.Total = ct.Total.Add(balance)
		ct.Addresses++
	}
	return s, nil
}

// Balance queries one address without touching the store. An empty chain
// means networks.DefaultChain.
func (m *Monitor) Balance(ctx context.Context, address, chain string) (decimal.Decimal, error) {
	if chain == "" {
		chain = networks.DefaultChain
	}
	return m.resolver.ResolveBalance(ctx, address, chain)
}

const maxSuggestions = 3

// Lookup resolves a command line argument that is either a hex address or
// the display name of a tracked address on chain. Names match exactly
// (ignoring case) first, then fuzzily. A hex address that is not tracked is
// returned as is so its history can still be read.
func (m *Monitor) Lookup(query, chain string) (common.TrackedAddress, error) {
	return m.lookup(query, chain, true)
}

// Resolve is Lookup without fuzzy matching, for commands that change the
// tracked set. A name that is not an exact match yields a *NotTrackedError
// listing the closest names.
func (m *Monitor) Resolve(query, chain string) (common.TrackedAddress, error) {
	return m.lookup(query, chain, false)
}

func (m *Monitor) lookup(query, chain string, allowFuzzy bool) (common.TrackedAddress, error) {
	chain, err := m.canonicalChain(chain)
	if err != nil {
		return common.TrackedAddress{}, err
	}
	cfg, err := m.store.LoadConfig()
	if err != nil {
		return common.TrackedAddress{}, err
	}
	query = strings.TrimSpace(query)
	if common.IsAddress(query) {
		if i := cfg.Find(query, chain); i >= 0 {
			return cfg.Addresses[i], nil
		}
		return common.TrackedAddress{Address: query, Chain: chain}, nil
	}

	candidates := []common.TrackedAddress{}
	names := []string{}
	for _, t := range cfg.Addresses {
		if t.Chain != chain || t.Name == "" {
			continue
		}
		if strings.EqualFold(t.Name, query) {
			return t, nil
		}
		candidates = append(candidates, t)
		names = append(names, t.Name)
	}
	matches := fuzzy.Find(query, names)
	if allowFuzzy && len(matches) > 0 {
		return candidates[matches[0].Index], nil
	}
	notTracked := &NotTrackedError{Query: query, Chain: chain}
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		notTracked.Suggestions = append(notTracked.Suggestions, matches[i].Str)
	}
	return common.TrackedAddress{}, notTracked
}
