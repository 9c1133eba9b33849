package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/logger"
)

// ProjectFileName is searched for from the working directory upwards
const ProjectFileName = "mutigen.toml"

// SystemConfigPath is the lowest precedence config file
var SystemConfigPath = "/etc/mutigen/mutigen.toml"

// New builds a viper instance with defaults, env binding and the config file
// cascade. An explicit path replaces the project file lookup and must exist.
// Precedence (lowest to highest): defaults < system < user < project < env.
func New(explicitPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix("MUTIGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "config file %s", explicitPath),
				"run 'mutigen config init' to create one")
		}
	}

	for _, path := range Paths(explicitPath) {
		if err := mergeConfigFile(v, path); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load reads the configuration through New and decodes it
func Load(explicitPath string) (*Config, *viper.Viper, error) {
	v, err := New(explicitPath)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// LoadWithViper decodes configuration from a prepared viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from one file on top of the defaults,
// without environment binding
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

// Paths lists the candidate config files in merge order, lowest precedence first
func Paths(explicitPath string) []string {
	paths := []string{SystemConfigPath}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".mutigen", ProjectFileName))
	}
	if explicitPath != "" {
		return append(paths, explicitPath)
	}
	if wd, err := os.Getwd(); err == nil {
		if project := findProjectConfig(wd); project != "" {
			paths = append(paths, project)
		}
	}
	return paths
}

// findProjectConfig walks up from dir looking for mutigen.toml
func findProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFile merges one TOML file if it exists. A file that exists but
// does not parse is an error rather than silently ignored.
func mergeConfigFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	fileViper := viper.New()
	fileViper.SetConfigFile(path)
	fileViper.SetConfigType("toml")
	if err := fileViper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	logger.Debugw("Merged config file", logger.FieldPath, path)
	return nil
}

// Keys returns every known configuration key, sorted
func Keys(v *viper.Viper) []string {
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}
