// Package config provides Viper-based configuration loading for the level loader.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DataConfig locates level and asset files.
type DataConfig struct {
	// Dir is the data root every level path and asset directory is relative to.
	Dir string `mapstructure:"dir"`
	// TextureDir is the texture subdirectory of Dir.
	TextureDir string `mapstructure:"texture_dir"`
	// MeshDir is the mesh subdirectory of Dir.
	MeshDir string `mapstructure:"mesh_dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// LoaderConfig holds level extraction options.
type LoaderConfig struct {
	// TriggerWalk selects how trigger elements are enumerated: "tagged" visits
	// only <trigger> siblings, "siblings" visits every element following the
	// first trigger.
	TriggerWalk string `mapstructure:"trigger_walk"`
	// RequireLights fails a load whose document declares no <light>.
	RequireLights bool `mapstructure:"require_lights"`
}

// ResourcesConfig holds asset resolution settings.
type ResourcesConfig struct {
	// Absent is the policy for absent asset identifiers: "placeholder" or "error".
	Absent string `mapstructure:"absent"`
	// CacheCapacity bounds each resolved-asset cache.
	CacheCapacity int `mapstructure:"cache_capacity"`
}

// Config is the top-level application configuration.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Loader    LoaderConfig    `mapstructure:"loader"`
	Resources ResourcesConfig `mapstructure:"resources"`
}

// DataDir returns the data root. It satisfies the loader's environment contract.
func (c Config) DataDir() string {
	return c.Data.Dir
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateData(c.Data); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLoader(c.Loader); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateResources(c.Resources); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateData(d DataConfig) error {
	var errs []string
	if d.Dir == "" {
		errs = append(errs, "data.dir must not be empty")
	}
	if d.TextureDir == "" {
		errs = append(errs, "data.texture_dir must not be empty")
	}
	if d.MeshDir == "" {
		errs = append(errs, "data.mesh_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateLoader(l LoaderConfig) error {
	validWalks := map[string]bool{"tagged": true, "siblings": true}
	if !validWalks[l.TriggerWalk] {
		return fmt.Errorf("loader.trigger_walk must be one of [tagged, siblings], got %q", l.TriggerWalk)
	}
	return nil
}

func validateResources(r ResourcesConfig) error {
	var errs []string
	validAbsent := map[string]bool{"placeholder": true, "error": true}
	if !validAbsent[r.Absent] {
		errs = append(errs, fmt.Sprintf("resources.absent must be one of [placeholder, error], got %q", r.Absent))
	}
	if r.CacheCapacity < 1 {
		errs = append(errs, fmt.Sprintf("resources.cache_capacity must be >= 1, got %d", r.CacheCapacity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment variables only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with PORTAL_ prefix
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	setDefaults(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.texture_dir", "textures")
	v.SetDefault("data.mesh_dir", "meshes")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("loader.trigger_walk", "tagged")
	v.SetDefault("loader.require_lights", true)

	v.SetDefault("resources.absent", "placeholder")
	v.SetDefault("resources.cache_capacity", 256)
}
