package store_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tranvictor/balancewatch/common"
	"github.com/tranvictor/balancewatch/util/store"
)

const (
	addrA = "0x1111111111111111111111111111111111111111"
	addrB = "0x2222222222222222222222222222222222222222"
)

func newStore(t *testing.T, retention int) *store.Store {
	t.Helper()
	return store.New(store.PathsIn(t.TempDir()), retention, nil)
}

func record(addr, chain string, balance int64) common.BalanceRecord {
	b := decimal.NewFromInt(balance)
	return common.BalanceRecord{
		Timestamp:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:          addr,
		Chain:            chain,
		Balance:          b,
		FormattedBalance: common.FormatAmount(b),
	}
}

func TestLoadMissingFilesReturnsEmpty(t *testing.T) {
	s := newStore(t, 0)
	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %s", err)
	}
	if cfg.Addresses == nil || len(cfg.Addresses) != 0 {
		t.Fatalf("want empty non-nil address list, got %#v", cfg.Addresses)
	}
	h, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %s", err)
	}
	if h.Records == nil || len(h.Records) != 0 {
		t.Fatalf("want empty non-nil record list, got %#v", h.Records)
	}
}

func TestLoadMalformedConfigFails(t *testing.T) {
	s := newStore(t, 0)
	if err := os.WriteFile(s.Paths().Config, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %s", err)
	}
	if _, err := s.LoadConfig(); err == nil {
		t.Fatalf("expected malformed config to fail")
	}
}

func TestSaveLoadConfigIsIdempotent(t *testing.T) {
	s := newStore(t, 0)
	cfg := common.Configuration{Addresses: []common.TrackedAddress{
		{Name: "Hot wallet", Address: addrA, Chain: "ethereum", Threshold: decimal.RequireFromString("5.5")},
		{Address: addrB, Chain: "base"},
	}}
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %s", err)
	}

	var snapshots [][]byte
	for i := 0; i < 2; i++ {
		loaded, err := s.LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig: %s", err)
		}
		if err := s.SaveConfig(loaded); err != nil {
			t.Fatalf("SaveConfig: %s", err)
		}
		content, err := os.ReadFile(s.Paths().Config)
		if err != nil {
			t.Fatalf("read: %s", err)
		}
		snapshots = append(snapshots, content)
	}
	if !bytes.Equal(snapshots[0], snapshots[1]) {
		t.Fatalf("config changed across load/save:\n%s\n---\n%s", snapshots[0], snapshots[1])
	}
	if !strings.Contains(string(snapshots[0]), `"addresses"`) {
		t.Fatalf("unexpected document: %s", snapshots[0])
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := store.New(store.PathsIn(dir), 0, nil)
	if err := s.SaveHistory(common.History{}); err != nil {
		t.Fatalf("SaveHistory: %s", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Fatalf("temporary files left behind: %v", matches)
	}
}

func TestAppendRecordRetentionIsPerPair(t *testing.T) {
	s := newStore(t, 3)
	if err := s.AppendRecord(record(addrB, "ethereum", 100)); err != nil {
		t.Fatalf("AppendRecord: %s", err)
	}
	for i := int64(1); i <= 5; i++ {
		if err := s.AppendRecord(record(addrA, "ethereum", i)); err != nil {
			t.Fatalf("AppendRecord: %s", err)
		}
	}

	h, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %s", err)
	}
	a := h.ForPair(addrA, "ethereum")
	if len(a) != 3 {
		t.Fatalf("want 3 records for the pair, got %d", len(a))
	}
	for i, want := range []int64{3, 4, 5} {
		if !a[i].Balance.Equal(decimal.NewFromInt(want)) {
			t.Fatalf("record %d: want %d, got %s", i, want, a[i].Balance)
		}
	}
	if b := h.ForPair(addrB, "ethereum"); len(b) != 1 {
		t.Fatalf("records of other pairs must survive, got %d", len(b))
	}
}

func TestPruneKeepsOrder(t *testing.T) {
	records := []common.BalanceRecord{
		record(addrA, "base", 1),
		record(addrB, "base", 10),
		record(addrA, "base", 2),
		record(addrA, "base", 3),
	}
	got := store.Prune(records, addrA, "base", 2)
	var balances []string
	for _, r := range got {
		balances = append(balances, r.Balance.String())
	}
	if strings.Join(balances, ",") != "10,2,3" {
		t.Fatalf("unexpected prune result: %v", balances)
	}
}

func TestUpdateConfigDoesNotSaveOnError(t *testing.T) {
	s := newStore(t, 0)
	err := s.UpdateConfig(func(cfg *common.Configuration) error {
		cfg.Addresses = append(cfg.Addresses, common.TrackedAddress{Address: addrA, Chain: "base"})
		return fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, statErr := os.Stat(s.Paths().Config); !os.IsNotExist(statErr) {
		t.Fatalf("config should not have been written")
	}
}

// Two stores on the same directory stand in for two processes.
func TestConcurrentAppendsAreNotLost(t *testing.T) {
	dir := t.TempDir()
	stores := []*store.Store{
		store.New(store.PathsIn(dir), 0, nil),
		store.New(store.PathsIn(dir), 0, nil),
	}
	var wg sync.WaitGroup
	for i, s := range stores {
		wg.Add(1)
		go func(i int, s *store.Store) {
			defer wg.Done()
			addr := []string{addrA, addrB}[i]
			for j := int64(0); j < 10; j++ {
				if err := s.AppendRecord(record(addr, "polygon", j)); err != nil {
					t.Errorf("AppendRecord: %s", err)
				}
			}
		}(i, s)
	}
	wg.Wait()

	h, err := stores[0].LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %s", err)
	}
	if len(h.Records) != 20 {
		t.Fatalf("want 20 records, got %d", len(h.Records))
	}
}
