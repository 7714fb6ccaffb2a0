// FILE: ssetail/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// Load builds the client configuration from defaults, config file,
// SSETAIL_* environment variables and CLI overrides, in increasing precedence
func Load(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath("ssetail.toml")

	lcfg, err := newBuilder(defaults(), configPath, cliArgs)
	if err != nil {
		return nil, err
	}

	finalConfig := &Config{}
	if err := lcfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}
	finalConfig.ConfigFile = configPath

	return finalConfig, validateConfig(finalConfig)
}

// LoadEmitter builds the companion emitter configuration
func LoadEmitter(cliArgs []string) (*EmitterConfig, error) {
	configPath := GetConfigPath("sse-emitter.toml")

	lcfg, err := newBuilder(emitterDefaults(), configPath, cliArgs)
	if err != nil {
		return nil, err
	}

	finalConfig := &EmitterConfig{}
	if err := lcfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}
	finalConfig.ConfigFile = configPath

	return finalConfig, validateEmitterConfig(finalConfig)
}

func newBuilder(defaults any, configPath string, cliArgs []string) (*lconfig.Config, error) {
	lcfg, err := lconfig.NewBuilder().
		WithDefaults(defaults).
		WithEnvPrefix("SSETAIL_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		// A missing config file falls back to defaults, unless it was asked for explicitly
		if !strings.Contains(err.Error(), "not found") || os.Getenv("SSETAIL_CONFIG_FILE") != "" {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if lcfg == nil {
		return nil, fmt.Errorf("failed to load config: no configuration produced")
	}

	return lcfg, nil
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "SSETAIL_" + env
	return env
}

// GetConfigPath resolves the config file location from SSETAIL_CONFIG_FILE
// and SSETAIL_CONFIG_DIR, falling back to ~/.config/<name>
func GetConfigPath(name string) string {
	if configFile := os.Getenv("SSETAIL_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("SSETAIL_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("SSETAIL_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, name)
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", name)
	}

	return name
}
