package main

import (
	"fmt"
	"os"

	"github.com/gogpu/meshtopo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every subcommand. Values come from
// the optional --config file and are overridden by explicit flags.
type Config struct {
	Precision int `yaml:"precision"`
	// Policy names a meshtopo.FacePolicy. Empty keeps each operation's
	// default.
	Policy  string `yaml:"policy"`
	Workers int    `yaml:"workers"`
	// Preview also writes a PNG next to every mesh output.
	Preview bool `yaml:"preview"`
}

func defaultConfig() Config {
	return Config{Precision: meshtopo.DefaultPrecision}
}

// loadConfig reads path into cfg. Fields missing from the file keep their
// current value.
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyFlags overrides cfg with the persistent flags the user set.
func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("precision") {
		if cfg.Precision, err = flags.GetInt("precision"); err != nil {
			return err
		}
	}
	if flags.Changed("policy") {
		if cfg.Policy, err = flags.GetString("policy"); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}
	if flags.Changed("preview") {
		if cfg.Preview, err = flags.GetBool("preview"); err != nil {
			return err
		}
	}
	return nil
}

// options converts the configuration into engine options.
func (c Config) options() ([]meshtopo.Option, error) {
	opts := []meshtopo.Option{
		meshtopo.WithPrecision(c.Precision),
		meshtopo.WithWorkers(c.Workers),
	}
	if c.Policy != "" {
		policy, err := meshtopo.ParseFacePolicy(c.Policy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, meshtopo.WithFacePolicy(policy))
	}
	return opts, nil
}
