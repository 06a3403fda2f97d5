package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todos/internal/api"
	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyListenAddr    = "listen_addr"
	cfgKeyAllowedOrigin = "allowed_origin"
	cfgKeyAPIURL        = "api_url"
	cfgKeyUsername      = "auth.username"
	cfgKeyPassword      = "auth.password"
	cfgKeyToken         = "auth.token"
	cfgKeyLogLevel      = "log_level"
	cfgKeyLogJSON       = "log_json"

	defaultLogLevel = "info"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# todos configuration

# Storage backend
backend: sqlite

# Data directory (optional; overridable by --data-dir)
# data_dir:

# HTTP server
listen_addr: ":3001"
allowed_origin: "http://localhost:3000"

# Client target
api_url: "http://localhost:3001"

# Login placeholder
auth:
  username: testuser
  password: password
  token: fake-jwt-token

# Logging
log_level: info
log_json: false
`

// settings is the typed view of config.yaml.
type settings struct {
	ConfigDir     string            `yaml:"config_dir"`
	Backend       string            `yaml:"backend"`
	DataDir       string            `yaml:"data_dir,omitempty"`
	ListenAddr    string            `yaml:"listen_addr"`
	AllowedOrigin string            `yaml:"allowed_origin"`
	APIURL        string            `yaml:"api_url"`
	Auth          types.Credentials `yaml:"auth"`
	LogLevel      string            `yaml:"log_level"`
	LogJSON       bool              `yaml:"log_json"`
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	def := types.DefaultCredentials()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyListenAddr, api.DefaultAddr)
	v.SetDefault(cfgKeyAllowedOrigin, api.DefaultAllowedOrigin)
	v.SetDefault(cfgKeyAPIURL, client.DefaultBaseURL)
	v.SetDefault(cfgKeyUsername, def.Username)
	v.SetDefault(cfgKeyPassword, def.Password)
	v.SetDefault(cfgKeyToken, def.Token)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogJSON, false)
}

func settingsFrom(v *viper.Viper) settings {
	return settings{
		Backend:       v.GetString(cfgKeyBackend),
		DataDir:       v.GetString(cfgKeyDataDir),
		ListenAddr:    v.GetString(cfgKeyListenAddr),
		AllowedOrigin: v.GetString(cfgKeyAllowedOrigin),
		APIURL:        v.GetString(cfgKeyAPIURL),
		Auth: types.Credentials{
			Username: v.GetString(cfgKeyUsername),
			Password: v.GetString(cfgKeyPassword),
			Token:    v.GetString(cfgKeyToken),
		},
		LogLevel: v.GetString(cfgKeyLogLevel),
		LogJSON:  v.GetBool(cfgKeyLogJSON),
	}
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
