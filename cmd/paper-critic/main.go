// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-critic CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-critic/internal/logging"
	"github.com/pdiddy/paper-critic/internal/secrets"
	"github.com/pdiddy/paper-critic/internal/tracing"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the effective configuration, resolved in PersistentPreRunE.
	cfg types.Config

	// configErr holds a config file error found during initConfig.
	configErr error

	shutdownTracing tracing.Shutdown
)

// rootCmd is the base command for the paper-critic CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-critic",
	Short: "Assess academic papers for quality, originality, and citation validity",
	Long: `paper-critic reads a research paper and produces a structured assessment:
an originality estimate against a local reference corpus, validation of every
entry in the reference list, five heuristic critiques, and an overall grade
with recommendations.

Use "analyze" to assess a paper and "corpus" to manage the reference texts
that originality scoring compares against.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if shutdownTracing == nil {
			return nil
		}
		return shutdownTracing(cmd.Context())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./paper-critic.yaml or ~/.config/paper-critic/config.yaml)")
	flags.String("secrets-dir", ".secrets/", "directory of API key files")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")

	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configErr = configureViper(viper.GetViper(), cfgFile)
}

// setup resolves configuration, secrets, logging, and tracing before any
// subcommand runs. The logger travels in the command context.
func setup(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	c, warnings, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.New(c.Log, os.Stderr)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid log configuration")
	}
	ctx := logger.WithContext(cmd.Context())

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug().Str("path", used).Msg("using config file")
	}
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}

	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	s, err := secrets.Load(ctx, secretsDir)
	if err != nil {
		return err
	}
	secrets.Apply(&c, s)
	if len(s) > 0 {
		logger.Debug().Strs("keys", sortedKeys(s)).Msg("loaded secrets")
	}

	shutdown, err := tracing.Setup(ctx, c.Tracing.OTLPEndpoint)
	if err != nil {
		logger.Warn().Err(err).Msg("tracing disabled")
	} else {
		shutdownTracing = shutdown
	}

	cfg = c
	cmd.SetContext(ctx)
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
