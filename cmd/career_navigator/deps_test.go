package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaswata15/career-navigation-platform/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `{
		"neo4j_uri": "bolt://localhost:7687",
		"api_key": "test-key",
		"max_hops": 3
	}`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, 3, cfg.MaxHops)
	assert.Equal(t, config.DefaultListenAddr, cfg.ListenAddr)
}

func TestLoadConfig_EnvFillsMissing(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://envhost:7687")
	t.Setenv("GOOGLE_API_KEY", "env-key")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "bolt://envhost:7687", cfg.Neo4jURI)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, config.DefaultMaxHops, cfg.MaxHops)
}

func TestLoadConfig_FileWinsOverEnv(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://envhost:7687")
	t.Setenv("GOOGLE_API_KEY", "env-key")

	path := writeConfig(t, `{"neo4j_uri": "bolt://filehost:7687", "api_key": "file-key"}`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bolt://filehost:7687", cfg.Neo4jURI)
	assert.Equal(t, "file-key", cfg.APIKey)
}

func TestLoadConfig_MissingRequiredFields(t *testing.T) {
	t.Setenv("NEO4J_URI", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := loadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neo4j_uri")
}

func TestLoadConfig_BadFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "seed", "paths", "similar"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
