package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	HomeVariableName       = "BALANCEWATCH_HOME"
	RetentionVariableName  = "BALANCEWATCH_RETENTION"
	RPCTimeoutVariableName = "BALANCEWATCH_RPC_TIMEOUT"

	DefaultDirName    = ".balancewatch"
	SettingsFileName  = "settings.yaml"
	EnvFileName       = ".env"
	DefaultRetention  = 100
	DefaultRPCTimeout = 15 * time.Second
)

// Settings are the tunables read from the data dir. A missing
// settings.yaml leaves every field at its default.
//
//	retention: 100
//	rpc_timeout: 15s
//	endpoints:
//	  base: https://base-sepolia.example.org
type Settings struct {
	DataDir    string            `yaml:"-"`
	Retention  int               `yaml:"retention"`
	RPCTimeout time.Duration     `yaml:"rpc_timeout"`
	Endpoints  map[string]string `yaml:"endpoints"`
}

func DefaultSettings(dataDir string) Settings {
	return Settings{
		DataDir:    dataDir,
		Retention:  DefaultRetention,
		RPCTimeout: DefaultRPCTimeout,
		Endpoints:  map[string]string{},
	}
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are skipped and variables that are already set are never overridden.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ResolveDataDir picks the data dir from the flag value, then
// $BALANCEWATCH_HOME, then ~/.balancewatch.
func ResolveDataDir(flagValue string) (string, error) {
	if dir := strings.TrimSpace(flagValue); dir != "" {
		return dir, nil
	}
	if dir := strings.TrimSpace(os.Getenv(HomeVariableName)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("couldn't resolve home dir, set %s: %w", HomeVariableName, err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// LoadSettings reads <dataDir>/.env and <dataDir>/settings.yaml. Env vars
// take precedence over the yaml file.
func LoadSettings(dataDir string) (Settings, error) {
	s := DefaultSettings(dataDir)
	if err := LoadDotEnv(filepath.Join(dataDir, EnvFileName)); err != nil {
		return s, err
	}

	path := filepath.Join(dataDir, SettingsFileName)
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return s, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(content, &s); err != nil {
			return s, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if s.Endpoints == nil {
		s.Endpoints = map[string]string{}
	}

	if raw := strings.TrimSpace(os.Getenv(RetentionVariableName)); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", RetentionVariableName, err)
		}
		s.Retention = v
	}
	if raw := strings.TrimSpace(os.Getenv(RPCTimeoutVariableName)); raw != "" {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", RPCTimeoutVariableName, err)
		}
		s.RPCTimeout = v
	}

	if s.Retention <= 0 {
		return s, fmt.Errorf("retention must be positive, got %d", s.Retention)
	}
	if s.RPCTimeout <= 0 {
		return s, fmt.Errorf("rpc timeout must be positive, got %s", s.RPCTimeout)
	}
	return s, nil
}
