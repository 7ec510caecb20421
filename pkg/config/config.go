package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/idrepo"
	ConfigFileName    = "idrepo.yml"
)

// ValidLogLevels is the list of accepted log_level values
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidDialects is the list of accepted sql_dialect values. An empty dialect
// is taken from the database URL.
var ValidDialects = []string{"postgres", "mysql", "sqlite"}

// IdrepoConfig holds all idrepo configuration settings
type IdrepoConfig struct {
	// ImplementationCacheSize is the number of implementations kept loaded
	ImplementationCacheSize int `yaml:"implementation_cache_size" json:"implementation_cache_size"`

	// BatchReapInterval is the interval between expired batch reaps in seconds
	BatchReapInterval int `yaml:"batch_reap_interval" json:"batch_reap_interval"`

	// LogLevel is the logging verbosity
	LogLevel string `yaml:"log_level" json:"log_level"`

	// SQLDialect overrides the dialect implied by the database URL
	SQLDialect string `yaml:"sql_dialect" json:"sql_dialect"`

	// HTTPTimeout is the read and write timeout of the admin server in seconds
	HTTPTimeout int `yaml:"http_timeout" json:"http_timeout"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *IdrepoConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *IdrepoConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *IdrepoConfig {
	return &IdrepoConfig{
		ImplementationCacheSize: 256,
		BatchReapInterval:       300,
		LogLevel:                "info",
		SQLDialect:              "",
		HTTPTimeout:             30,
		sources:                 make(map[string]string),
	}
}

// Path returns the config file path, from IDREPO_CONFIG_PATH or the default
func Path() string {
	configPath := os.Getenv("IDREPO_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return filepath.Join(configPath, ConfigFileName)
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*IdrepoConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	config.configFilePath = Path()

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig IdrepoConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"implementation_cache_size", "batch_reap_interval",
		"log_level", "sql_dialect", "http_timeout",
	}
}

func (c *IdrepoConfig) applyFileConfig(file *IdrepoConfig) {
	if file.ImplementationCacheSize != 0 {
		c.ImplementationCacheSize = file.ImplementationCacheSize
		c.sources["implementation_cache_size"] = "file"
	}
	if file.BatchReapInterval != 0 {
		c.BatchReapInterval = file.BatchReapInterval
		c.sources["batch_reap_interval"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.SQLDialect != "" {
		c.SQLDialect = file.SQLDialect
		c.sources["sql_dialect"] = "file"
	}
	if file.HTTPTimeout != 0 {
		c.HTTPTimeout = file.HTTPTimeout
		c.sources["http_timeout"] = "file"
	}
}

func (c *IdrepoConfig) applyEnvConfig() {
	if val := os.Getenv("IDREPO_IMPLEMENTATION_CACHE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ImplementationCacheSize = i
			c.sources["implementation_cache_size"] = "environment"
		}
	}
	if val := os.Getenv("IDREPO_BATCH_REAP_INTERVAL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.BatchReapInterval = i
			c.sources["batch_reap_interval"] = "environment"
		}
	}
	if val := os.Getenv("IDREPO_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("IDREPO_SQL_DIALECT"); val != "" {
		c.SQLDialect = strings.ToLower(val)
		c.sources["sql_dialect"] = "environment"
	}
	if val := os.Getenv("IDREPO_HTTP_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.HTTPTimeout = i
			c.sources["http_timeout"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *IdrepoConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *IdrepoConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// ReapInterval returns the batch reap interval as a duration
func (c *IdrepoConfig) ReapInterval() time.Duration {
	return time.Duration(c.BatchReapInterval) * time.Second
}

// Timeout returns the HTTP timeout as a duration
func (c *IdrepoConfig) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// Validate validates the configuration
func (c *IdrepoConfig) Validate() error {
	if c.ImplementationCacheSize < 0 {
		return fmt.Errorf("invalid implementation_cache_size value: %d", c.ImplementationCacheSize)
	}
	if c.BatchReapInterval < 0 {
		return fmt.Errorf("invalid batch_reap_interval value: %d", c.BatchReapInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid http_timeout value: %d", c.HTTPTimeout)
	}
	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level value: %s", c.LogLevel)
	}
	if c.SQLDialect != "" && !contains(ValidDialects, c.SQLDialect) {
		return fmt.Errorf("invalid sql_dialect value: %s", c.SQLDialect)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *IdrepoConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "implementation_cache_size", Value: strconv.Itoa(c.ImplementationCacheSize), Source: c.Source("implementation_cache_size")},
		{Name: "batch_reap_interval", Value: strconv.Itoa(c.BatchReapInterval), Source: c.Source("batch_reap_interval")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "sql_dialect", Value: c.SQLDialect, Source: c.Source("sql_dialect")},
		{Name: "http_timeout", Value: strconv.Itoa(c.HTTPTimeout), Source: c.Source("http_timeout")},
	}
}

// FormatText returns a text representation of the configuration
func (c *IdrepoConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-20s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-20s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-20s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *IdrepoConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
