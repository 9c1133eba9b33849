// Package config loads mutigen settings from defaults, TOML files,
// MUTIGEN_* environment variables and command line flags.
package config

import (
	"github.com/teranos/mutigen/driver"
	"github.com/teranos/mutigen/gen"
)

// Config is the complete mutigen configuration
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator" toml:"generator" yaml:"generator" json:"generator"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// GeneratorConfig configures the emitted text and the batch driver
type GeneratorConfig struct {
	FailFast             bool   `mapstructure:"fail_fast" toml:"fail_fast" yaml:"fail_fast" json:"fail_fast"`
	Workers              int    `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"` // 0 = GOMAXPROCS
	BlockingSuffix       string `mapstructure:"blocking_suffix" toml:"blocking_suffix" yaml:"blocking_suffix" json:"blocking_suffix"`
	ForgetSuffix         string `mapstructure:"forget_suffix" toml:"forget_suffix" yaml:"forget_suffix" json:"forget_suffix"`
	IncludeDocs          bool   `mapstructure:"include_docs" toml:"include_docs" yaml:"include_docs" json:"include_docs"`
	IncludeFireAndForget bool   `mapstructure:"include_fire_and_forget" toml:"include_fire_and_forget" yaml:"include_fire_and_forget" json:"include_fire_and_forget"`
	SingleType           string `mapstructure:"single_type" toml:"single_type" yaml:"single_type" json:"single_type"`
	MultiType            string `mapstructure:"multi_type" toml:"multi_type" yaml:"multi_type" json:"multi_type"`
	FailureSink          string `mapstructure:"failure_sink" toml:"failure_sink" yaml:"failure_sink" json:"failure_sink"`
	PackageFrom          string `mapstructure:"package_from" toml:"package_from" yaml:"package_from" json:"package_from"`
	PackageTo            string `mapstructure:"package_to" toml:"package_to" yaml:"package_to" json:"package_to"`
}

// OutputConfig configures where generated units go
type OutputConfig struct {
	Dir string `mapstructure:"dir" toml:"dir" yaml:"dir" json:"dir"`
	// Formatter is a command run on written files, e.g. "google-java-format -i"
	Formatter          string `mapstructure:"formatter" toml:"formatter" yaml:"formatter" json:"formatter"`
	StampSourceVersion bool   `mapstructure:"stamp_source_version" toml:"stamp_source_version" yaml:"stamp_source_version" json:"stamp_source_version"`
}

// LogConfig configures the global logger
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
}

// Options converts the generator section into emitter options
func (c *Config) Options(stamp string) gen.Options {
	g := c.Generator
	return gen.Options{
		BlockingSuffix:       g.BlockingSuffix,
		ForgetSuffix:         g.ForgetSuffix,
		IncludeDocs:          g.IncludeDocs,
		IncludeFireAndForget: g.IncludeFireAndForget,
		SingleType:           g.SingleType,
		MultiType:            g.MultiType,
		FailureSink:          g.FailureSink,
		PackageFrom:          g.PackageFrom,
		PackageTo:            g.PackageTo,
		Stamp:                stamp,
	}
}

// DriverConfig converts the generator section into a batch driver config
func (c *Config) DriverConfig(stamp string) driver.Config {
	return driver.Config{
		FailFast: c.Generator.FailFast,
		Workers:  c.Generator.Workers,
		Options:  c.Options(stamp),
	}
}
