package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
	EnvPrefix   string
}

// Load returns the merged configuration from files and environment
// variables.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "reviewbot"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "REVIEWBOT"
	}
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AllowEmptyEnv(true)

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return expandEnvVars(cfg), nil
}

func setDefaults(v *viper.Viper) {
	// Register every key so environment overrides bind during Unmarshal.
	v.SetDefault("prefix", "")
	v.SetDefault("summary.path", "")
	v.SetDefault("workingDirectory", ".")
	v.SetDefault("eslint.binary", "eslint")
	v.SetDefault("eslint.timeout", "10m")
	v.SetDefault("annotations.style", "docs-message")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", ".reviewbot/runs.db")
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings.
func expandEnvVars(cfg Config) Config {
	cfg.Prefix = os.ExpandEnv(cfg.Prefix)
	cfg.WorkingDirectory = os.ExpandEnv(cfg.WorkingDirectory)
	cfg.ESLint.Binary = os.ExpandEnv(cfg.ESLint.Binary)
	cfg.Summary.Path = os.ExpandEnv(cfg.Summary.Path)
	cfg.Server.Addr = os.ExpandEnv(cfg.Server.Addr)
	cfg.Store.Path = os.ExpandEnv(cfg.Store.Path)
	return cfg
}

func locateConfigFile(name string, paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{"yaml", "yml"} {
			candidate := filepath.Join(dir, fmt.Sprintf("%s.%s", name, ext))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}
