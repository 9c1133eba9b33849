package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/mutigen/gen"
)

// DefaultOutputDir is where generated sources go unless configured
const DefaultOutputDir = "src/main/generated"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generator.fail_fast", false)
	v.SetDefault("generator.workers", 0) // GOMAXPROCS
	v.SetDefault("generator.blocking_suffix", gen.DefaultBlockingSuffix)
	v.SetDefault("generator.forget_suffix", gen.DefaultForgetSuffix)
	v.SetDefault("generator.include_docs", true)
	v.SetDefault("generator.include_fire_and_forget", true)
	v.SetDefault("generator.single_type", gen.DefaultSingleType)
	v.SetDefault("generator.multi_type", gen.DefaultMultiType)
	v.SetDefault("generator.failure_sink", gen.DefaultFailureSink)
	v.SetDefault("generator.package_from", gen.DefaultPackageFrom)
	v.SetDefault("generator.package_to", gen.DefaultPackageTo)

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.formatter", "")
	v.SetDefault("output.stamp_source_version", false)

	v.SetDefault("log.json", false)
}

// Default returns the configuration with only defaults applied
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}
