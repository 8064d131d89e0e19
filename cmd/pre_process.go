package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/balancewatch/common"
	"github.com/tranvictor/balancewatch/config"
	"github.com/tranvictor/balancewatch/networks"
	"github.com/tranvictor/balancewatch/util/monitor"
	"github.com/tranvictor/balancewatch/util/reader"
	"github.com/tranvictor/balancewatch/util/store"
)

// environment holds everything a command needs, built once per invocation
// from the flags, the settings and the env vars.
type environment struct {
	settings config.Settings
	logger   *zap.Logger
	client   *reader.Client
	chains   *networks.Registry
	store    *store.Store
	monitor  *monitor.Monitor
}

var env *environment

func preprocess(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(config.EnvFileName); err != nil {
		return err
	}
	dir, err := config.ResolveDataDir(config.DataDir)
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(dir)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		if config.RPCTimeout <= 0 {
			return fmt.Errorf("--timeout must be positive, got %s", config.RPCTimeout)
		}
		settings.RPCTimeout = config.RPCTimeout
	}

	logger, err := common.NewLogger(config.Debug)
	if err != nil {
		return fmt.Errorf("couldn't init logger: %w", err)
	}

	e, err := newEnvironment(settings, os.Getenv, logger)
	if err != nil {
		return err
	}
	env = e
	logger.Debug("environment ready",
		zap.String("dataDir", settings.DataDir),
		zap.Int("retention", settings.Retention),
		zap.Duration("rpcTimeout", settings.RPCTimeout),
	)
	return nil
}

// newEnvironment wires the chain registry, the RPC client, the store and the
// monitor. Endpoint precedence: node env var, then settings.yaml, then the
// built-in table.
func newEnvironment(settings config.Settings, getenv func(string) string, logger *zap.Logger) (*environment, error) {
	chains, err := networks.Default().WithEndpoints(settings.Endpoints)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoints in %s: %w", config.SettingsFileName, err)
	}
	chains = chains.WithEnvEndpoints(getenv)

	client := reader.NewClient(&http.Client{Timeout: settings.RPCTimeout}, logger)
	tokens := reader.NewTokenReader(client, chains, logger)
	st := store.New(store.PathsIn(settings.DataDir), settings.Retention, logger)
	return &environment{
		settings: settings,
		logger:   logger,
		client:   client,
		chains:   chains,
		store:    st,
		monitor:  monitor.NewMonitor(st, tokens, chains, logger),
	}, nil
}

func postprocess(cmd *cobra.Command, args []string) error {
	if env != nil {
		env.client.Close()
		// stderr can't be synced on some platforms, nothing to do about it
		_ = env.logger.Sync()
	}
	return nil
}
