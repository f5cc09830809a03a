// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-critic/pkg/types"
)

const envPrefix = "PAPER_CRITIC"

// secretKeys are omitted from the marshaled defaults but must still be
// known to viper so environment overrides reach them.
var secretKeys = []string{
	"summary.api_key",
	"citations.semantic_scholar_api_key",
	"citations.mailto",
}

// configureViper registers defaults, environment binding, and the config
// file search path on v. A missing config file is not an error.
func configureViper(v *viper.Viper, cfgFile string) error {
	if err := registerDefaults(v); err != nil {
		return err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("paper-critic")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paper-critic"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// registerDefaults flattens DefaultConfig into dotted viper keys.
func registerDefaults(v *viper.Viper) error {
	data, err := yaml.Marshal(types.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("decoding defaults: %w", err)
	}
	setDefaults(v, "", tree)
	for _, k := range secretKeys {
		v.SetDefault(k, "")
	}
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// loadConfig decodes v into a Config and repairs out-of-range values.
// The returned warnings describe each repair.
func loadConfig(v *viper.Viper) (types.Config, []string, error) {
	c := types.DefaultConfig()
	err := v.Unmarshal(&c, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return c, nil, fmt.Errorf("decoding config: %w", err)
	}
	return c, c.Normalize(), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration paper-critic will run with after merging
defaults, the config file, and PAPER_CRITIC_* environment variables.
Credentials are redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfig(cmd.OutOrStdout(), redacted(cfg))
	},
}

func writeConfig(w io.Writer, c types.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func redacted(c types.Config) types.Config {
	mask := func(s *string) {
		if *s != "" {
			*s = "********"
		}
	}
	mask(&c.Summary.APIKey)
	mask(&c.Citations.SemanticScholarAPIKey)
	return c
}

func init() {
	rootCmd.AddCommand(configCmd)
}
