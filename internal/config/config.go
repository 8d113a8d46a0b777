// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config.yaml"
	ConfigDirName  = "scpsync"
	EnvPrefix      = "SCPSYNC"
)

// Settings are tool-wide defaults shared by every project
type Settings struct {
	Transport    string        `mapstructure:"transport"`
	SSHBinary    string        `mapstructure:"ssh_binary"`
	SCPBinary    string        `mapstructure:"scp_binary"`
	Port         int           `mapstructure:"port"`
	IdentityFile string        `mapstructure:"identity_file"`
	KnownHosts   string        `mapstructure:"known_hosts"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ConfigName   string        `mapstructure:"config_name"`
}

// Parses and validates a raw value for each supported key
var settingParsers = map[string]func(string) (any, error){
	"transport":     parseTransportName,
	"ssh_binary":    parseNonEmpty,
	"scp_binary":    parseNonEmpty,
	"port":          parsePort,
	"identity_file": parseNonEmpty,
	"known_hosts":   parseNonEmpty,
	"timeout":       parseDuration,
	"config_name":   parseNonEmpty,
}

var settingDefaults = map[string]any{
	"transport":     "scp",
	"ssh_binary":    "ssh",
	"scp_binary":    "scp",
	"port":          0,
	"identity_file": "",
	"known_hosts":   "",
	"timeout":       30 * time.Second,
	"config_name":   ProjectFileName,
}

// Manager owns the tool settings file and its environment overrides
type Manager struct {
	v    *viper.Viper
	path string
}

// Creates a manager for ~/.config/scpsync/config.yaml
func NewManager() (*Manager, error) {
	configPath, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath)
}

// Creates a manager for an explicit settings file
func NewManagerAt(configPath string) (*Manager, error) {
	m := &Manager{path: configPath}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

func defaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", ConfigDirName, ConfigFileName), nil
}

func (m *Manager) reload() error {
	v := viper.New()
	for key, value := range settingDefaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetConfigFile(m.path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("error reading settings file: %w", err)
	}

	m.v = v
	return nil
}

// Returns the location of the settings file
func (m *Manager) Path() string {
	return m.path
}

// Returns the effective settings (defaults < file < environment)
func (m *Manager) LoadConfig() (*Settings, error) {
	var settings Settings
	if err := m.v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error parsing settings: %w", err)
	}
	return &settings, nil
}

func (m *Manager) SetValue(key, value string) error {
	parse, ok := settingParsers[key]
	if !ok {
		return fmt.Errorf("unknown setting: %s. Supported settings are: %s", key, strings.Join(SupportedKeys(), ", "))
	}

	parsed, err := parse(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	stored, err := m.readStored()
	if err != nil {
		return err
	}
	stored[key] = parsed

	return m.writeStored(stored)
}

func (m *Manager) GetValue(key string) (any, bool) {
	if _, ok := settingParsers[key]; !ok {
		return nil, false
	}
	return m.v.Get(key), true
}

// Removes a stored value so the default (or environment) applies again.
// Reports false when the key was not stored.
func (m *Manager) DeleteValue(key string) (bool, error) {
	if _, ok := settingParsers[key]; !ok {
		return false, fmt.Errorf("unknown setting: %s", key)
	}

	stored, err := m.readStored()
	if err != nil {
		return false, err
	}
	if _, exists := stored[key]; !exists {
		return false, nil
	}
	delete(stored, key)

	if err := m.writeStored(stored); err != nil {
		return false, err
	}
	return true, nil
}

// Returns the effective value of every supported setting
func (m *Manager) GetAllSettings() map[string]any {
	all := make(map[string]any, len(settingParsers))
	for _, key := range SupportedKeys() {
		all[key] = m.v.Get(key)
	}
	return all
}

// Reports where the effective value of key comes from: "env", "file" or "default"
func (m *Manager) Source(key string) string {
	if _, ok := os.LookupEnv(EnvPrefix + "_" + strings.ToUpper(key)); ok {
		return "env"
	}
	if m.v.InConfig(key) {
		return "file"
	}
	return "default"
}

// Returns the sorted list of supported setting keys
func SupportedKeys() []string {
	keys := make([]string, 0, len(settingParsers))
	for k := range settingParsers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reads only what is persisted in the settings file, without defaults or env
func (m *Manager) readStored() (map[string]any, error) {
	stored := viper.New()
	stored.SetConfigFile(m.path)
	stored.SetConfigType("yaml")
	if err := stored.ReadInConfig(); err != nil {
		if isNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}
	return stored.AllSettings(), nil
}

func (m *Manager) writeStored(values map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	stored := viper.New()
	stored.SetConfigType("yaml")
	for k, v := range values {
		stored.Set(k, v)
	}
	if err := stored.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("error writing settings file: %w", err)
	}

	return m.reload()
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

func parseNonEmpty(value string) (any, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("value cannot be empty")
	}
	return value, nil
}

func parseTransportName(value string) (any, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil, errors.New("transport name cannot be empty")
	}
	return value, nil
}

func parsePort(value string) (any, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("port must be a number: %w", err)
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

func parseDuration(value string) (any, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return nil, err
	}
	if d < 0 {
		return nil, errors.New("timeout cannot be negative")
	}
	return d.String(), nil
}
