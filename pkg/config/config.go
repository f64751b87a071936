// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/blockartistry/recycler/pkg/defaults"
	"github.com/blockartistry/recycler/pkg/version"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "RECYCLER"

	configName = ".recycler"
	configType = "yaml"
)

// Config keys.
const (
	KeyGameVersion  = "game_version"
	KeyDataDirs     = "data_dirs"
	KeyScriptsDir   = "scripts_dir"
	KeyModWhitelist = "mod_whitelist"
	KeyBlacklist    = "recycler_blacklist"
	KeyOreScan      = "enable_ore_dictionary_scan"
	KeyVanillaFirst = "vanilla_first"
	KeyLogLevel     = "log_level"
	KeyMetricsFile  = "metrics_file"
	KeyMaxStackSize = "max_stack_size"
	KeyRecipesDB    = "recipes_db"
)

const defaultGame = "1.7.10"

var (
	ErrInvalidGameVersion = errors.New("invalid game version")
	ErrInvalidStackSize   = errors.New("max stack size must be between 1 and 64")
	ErrEmptyWhitelist     = errors.New("mod whitelist is empty")
	ErrInvalidLogLevel    = errors.New("invalid log level")
)

// Config holds the resolved settings.
type Config struct {
	GameVersion  string   `mapstructure:"game_version" yaml:"gameVersion" json:"gameVersion"`
	DataDirs     []string `mapstructure:"data_dirs" yaml:"dataDirs,omitempty" json:"dataDirs,omitempty"`
	ScriptsDir   string   `mapstructure:"scripts_dir" yaml:"scriptsDir,omitempty" json:"scriptsDir,omitempty"`
	ModWhitelist []string `mapstructure:"mod_whitelist" yaml:"modWhitelist" json:"modWhitelist"`
	Blacklist    []string `mapstructure:"recycler_blacklist" yaml:"blacklist,omitempty" json:"blacklist,omitempty"`
	OreScan      bool     `mapstructure:"enable_ore_dictionary_scan" yaml:"oreScan" json:"oreScan"`
	VanillaFirst bool     `mapstructure:"vanilla_first" yaml:"vanillaFirst" json:"vanillaFirst"`
	LogLevel     string   `mapstructure:"log_level" yaml:"logLevel" json:"logLevel"`
	MetricsFile  string   `mapstructure:"metrics_file" yaml:"metricsFile,omitempty" json:"metricsFile,omitempty"`
	MaxStackSize int      `mapstructure:"max_stack_size" yaml:"maxStackSize" json:"maxStackSize"`
	RecipesDB    string   `mapstructure:"recipes_db" yaml:"recipesDB,omitempty" json:"recipesDB,omitempty"`

	// File is the config file that was read, if any.
	File string `yaml:"-" json:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyGameVersion, defaultGame)
	v.SetDefault(KeyDataDirs, []string{})
	v.SetDefault(KeyScriptsDir, "")
	v.SetDefault(KeyModWhitelist, []string{defaults.VanillaMod, "recycler"})
	v.SetDefault(KeyBlacklist, []string{})
	v.SetDefault(KeyOreScan, true)
	v.SetDefault(KeyVanillaFirst, true)
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyMaxStackSize, defaults.MaxStackSize)
	v.SetDefault(KeyRecipesDB, "")
}

// Load reads the config file at path, or the first .recycler.yaml found
// in the home or working directory when path is empty, then applies
// environment overrides. The result is not validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType(configType)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return &cfg, nil
}

// Game returns the parsed game version.
func (c *Config) Game() (version.Version, error) {
	v, err := version.ParseVersion(c.GameVersion)
	if err != nil {
		return version.Version{}, fmt.Errorf("%w: %q: %w", ErrInvalidGameVersion, c.GameVersion, err)
	}
	return v, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if _, err := c.Game(); err != nil {
		return err
	}
	if c.MaxStackSize < 1 || c.MaxStackSize > defaults.MaxStackSize {
		return fmt.Errorf("%w: %d", ErrInvalidStackSize, c.MaxStackSize)
	}
	if len(c.ModWhitelist) == 0 {
		return ErrEmptyWhitelist
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
