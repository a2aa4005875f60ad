// Package config provides configuration loading and validation for the
// career navigation service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration. Values can come from a JSON
// file, environment variables, or CLI flags; later sources win.
type Config struct {
	// Backing services
	Neo4jURI      string `json:"neo4j_uri,omitempty"`      // Graph database bolt URI
	Neo4jUser     string `json:"neo4j_user,omitempty"`     // Graph database username
	Neo4jPassword string `json:"neo4j_password,omitempty"` // Graph database password
	RedisURL      string `json:"redis_url,omitempty"`      // Response cache URL (optional)
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL query history URL (optional)
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address

	// Engine tuning
	MaxHops        int     `json:"max_hops,omitempty"`        // Path search hop bound (1-4)
	SkillThreshold float64 `json:"skill_threshold,omitempty"` // Cosine similarity cutoff (0-1)
	CacheTTLHours  int     `json:"cache_ttl_hours,omitempty"` // Response cache lifetime

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Environment variable names honored by FromEnv.
const (
	envNeo4jURI      = "NEO4J_URI"
	envNeo4jUser     = "NEO4J_USER"
	envNeo4jPassword = "NEO4J_PASSWORD"
	envRedisURL      = "REDIS_URL"
	envDatabaseURL   = "DATABASE_URL"
	envAPIKey        = "GOOGLE_API_KEY"
	envListenAddr    = "LISTEN_ADDR"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultListenAddr = ":8000"
	DefaultMaxHops    = 4
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills any empty connection fields from the environment.
func (c *Config) FromEnv() {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&c.Neo4jURI, envNeo4jURI)
	fill(&c.Neo4jUser, envNeo4jUser)
	fill(&c.Neo4jPassword, envNeo4jPassword)
	fill(&c.RedisURL, envRedisURL)
	fill(&c.DatabaseURL, envDatabaseURL)
	fill(&c.APIKey, envAPIKey)
	fill(&c.ListenAddr, envListenAddr)
}

// ApplyDefaults fills unset tuning fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.MaxHops == 0 {
		c.MaxHops = DefaultMaxHops
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("config error: 'neo4j_uri' is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("config error: 'api_key' is required")
	}
	if c.MaxHops < 0 || c.MaxHops > 4 {
		return fmt.Errorf("config error: 'max_hops' must be between 1 and 4")
	}
	if c.SkillThreshold < 0 || c.SkillThreshold > 1 {
		return fmt.Errorf("config error: 'skill_threshold' must be between 0 and 1")
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	return nil
}
