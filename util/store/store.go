package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/tranvictor/balancewatch/common"
)

const (
	ConfigFileName   = "config.json"
	HistoryFileName  = "history.json"
	LockFileName     = ".lock"
	DefaultRetention = 100
)

// Paths locates the files owned by a Store.
type Paths struct {
	Config  string
	History string
	Lock    string
}

// PathsIn returns the standard file layout inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		Config:  filepath.Join(dir, ConfigFileName),
		History: filepath.Join(dir, HistoryFileName),
		Lock:    filepath.Join(dir, LockFileName),
	}
}

// Store persists the configuration and the balance history as two JSON
// documents. Every save rewrites the whole document. UpdateConfig and
// AppendRecord hold an exclusive file lock for their read-modify-write so
// concurrent invocations do not lose each other's writes.
type Store struct {
	paths     Paths
	retention int
	lock      *flock.Flock
	logger    *zap.Logger
}

// New creates a Store. retention is the number of records kept per
// (address, chain) pair; values <= 0 mean DefaultRetention.
func New(paths Paths, retention int, logger *zap.Logger) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		paths:     paths,
		retention: retention,
		lock:      flock.New(paths.Lock),
		logger:    logger,
	}
}

func (s *Store) Paths() Paths {
	return s.paths
}

func (s *Store) Retention() int {
	return s.retention
}

// LoadConfig returns an empty configuration when the file does not exist.
func (s *Store) LoadConfig() (common.Configuration, error) {
	cfg := common.Configuration{}
	if err := readJSON(s.paths.Config, &cfg); err != nil {
		return common.Configuration{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.Addresses == nil {
		cfg.Addresses = []common.TrackedAddress{}
	}
	return cfg, nil
}

func (s *Store) SaveConfig(cfg common.Configuration) error {
	if cfg.Addresses == nil {
		cfg.Addresses = []common.TrackedAddress{}
	}
	if err := writeJSON(s.paths.Config, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// LoadHistory returns an empty history when the file does not exist.
func (s *Store) LoadHistory() (common.History, error) {
	h := common.History{}
	if err := readJSON(s.paths.History, &h); err != nil {
		return common.History{}, fmt.Errorf("load history: %w", err)
	}
	if h.Records == nil {
		h.Records = []common.BalanceRecord{}
	}
	return h, nil
}

func (s *Store) SaveHistory(h common.History) error {
	if h.Records == nil {
		h.Records = []common.BalanceRecord{}
	}
	if err := writeJSON(s.paths.History, h); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// UpdateConfig loads the configuration, applies fn and saves the result
// under the store lock. Nothing is saved when fn fails.
func (s *Store) UpdateConfig(fn func(cfg *common.Configuration) error) error {
	return s.withLock(func() error {
		cfg, err := s.LoadConfig()
		if err != nil {
			return err
		}
		if err := fn(&cfg); err != nil {
			return err
		}
		return s.SaveConfig(cfg)
	})
}

// AppendRecord appends rec to the history and trims the records of rec's
// (address, chain) pair to the retention limit. Other pairs are kept as is.
func (s *Store) AppendRecord(rec common.BalanceRecord) error {
	return s.withLock(func() error {
		h, err := s.LoadHistory()
		if err != nil {
			return err
		}
		before := len(h.Records) + 1
		h.Records = Prune(append(h.Records, rec), rec.Address, rec.Chain, s.retention)
		if evicted := before - len(h.Records); evicted > 0 {
			s.logger.Debug("evicted old records",
				zap.String("address", rec.Address),
				zap.String("chain", rec.Chain),
				zap.Int("evicted", evicted),
			)
		}
		return s.SaveHistory(h)
	})
}

// Prune drops the oldest records of (address, chain) so that at most limit
// of them remain. Relative order of all kept records is preserved.
func Prune(records []common.BalanceRecord, address, chain string, limit int) []common.BalanceRecord {
	count := 0
	for _, r := range records {
		if r.Matches(address, chain) {
			count++
		}
	}
	drop := count - limit
	if drop <= 0 {
		return records
	}
	result := make([]common.BalanceRecord, 0, len(records)-drop)
	for _, r := range records {
		if drop > 0 && r.Matches(address, chain) {
			drop--
			continue
		}
		result = append(result, r)
	}
	return result
}

func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.paths.Lock), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.paths.Lock, err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("couldn't release store lock", zap.String("path", s.paths.Lock), zap.Error(err))
		}
	}()
	return fn()
}

func readJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// writeJSON replaces path with the indented JSON of v through a temporary
// file in the same directory, so readers never see a partial document.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
