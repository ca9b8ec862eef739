package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/parksite/internal/domain/section"
)

// Config holds the parksite API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Blog     BlogConfig     `yaml:"blog"`
	Site     SiteConfig     `yaml:"site"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverValkey   = "valkey"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// DatabaseConfig holds content store settings. Which fields are required
// depends on the driver.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"`     // postgres, sqlite, valkey, redis, memory (default: sqlite)
	DSN              string   `yaml:"dsn"`        // postgres
	Path             string   `yaml:"path"`       // sqlite; case-insensitive matching is ASCII only
	Addrs            []string `yaml:"addrs"`      // valkey, redis
	Password         string   `yaml:"password"`   // valkey, redis
	KeyPrefix        string   `yaml:"key_prefix"` // valkey, redis
	MaxConns         int      `yaml:"max_conns"`  // postgres
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	SeedFile         string   `yaml:"seed_file"` // loaded on start when set
}

// SearchConfig tunes the aggregate search.
type SearchConfig struct {
	MinQueryLength  int `yaml:"min_query_length"`
	PerSourceLimit  int `yaml:"per_source_limit"`
	MaxResults      int `yaml:"max_results"`
	SourceTimeoutMs int `yaml:"source_timeout_ms"`
}

// BlogConfig holds blog listing settings.
type BlogConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// SiteConfig describes the public site.
type SiteConfig struct {
	BaseURL      string          `yaml:"base_url"`
	StaticRoutes []string        `yaml:"static_routes"` // default: page hrefs of the section table
	Sections     []section.Entry `yaml:"sections"`      // default: built-in table
}

// Load reads configuration from a YAML file by environment name (local, dev, prod, test).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		c.Database.Path = filepath.Join("data", "parksite.db")
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.MinQueryLength <= 0 {
		c.Search.MinQueryLength = 2
	}
	if c.Search.PerSourceLimit <= 0 {
		c.Search.PerSourceLimit = 5
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 10
	}
	if c.Search.SourceTimeoutMs <= 0 {
		c.Search.SourceTimeoutMs = 2000
	}
	if c.Blog.DefaultPageSize <= 0 {
		c.Blog.DefaultPageSize = 9
	}
	if c.Blog.MaxPageSize <= 0 {
		c.Blog.MaxPageSize = 50
	}
}

// SourceTimeout returns the per-source search timeout.
func (c *SearchConfig) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutMs) * time.Millisecond
}

// SectionTable builds the static section table, falling back to the
// built-in entries when none are configured.
func (c *SiteConfig) SectionTable() (*section.Table, error) {
	if len(c.Sections) == 0 {
		return section.Default(), nil
	}
	t, err := section.NewTable(c.Sections)
	if err != nil {
		return nil, fmt.Errorf("site.sections: %w", err)
	}
	return t, nil
}

// Routes returns the static sitemap routes, defaulting to the page hrefs
// of table.
func (c *SiteConfig) Routes(table *section.Table) []string {
	if len(c.StaticRoutes) > 0 {
		return c.StaticRoutes
	}
	return table.PageHrefs()
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for driver %q", c.Database.Driver)
		}
	case DriverValkey, DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
		// ok
	default:
		return fmt.Errorf("database.driver must be one of postgres, sqlite, valkey, redis, memory, got %q",
			c.Database.Driver)
	}
	if c.Blog.DefaultPageSize > c.Blog.MaxPageSize {
		return fmt.Errorf("blog.default_page_size (%d) exceeds blog.max_page_size (%d)",
			c.Blog.DefaultPageSize, c.Blog.MaxPageSize)
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if _, err := c.Site.SectionTable(); err != nil {
		return err
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
