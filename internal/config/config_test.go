package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"neo4j_uri": "bolt://localhost:7687",
		"neo4j_user": "neo4j",
		"api_key": "test-key",
		"max_hops": 3,
		"skill_threshold": 0.8
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, 3, cfg.MaxHops)
	assert.Equal(t, 0.8, cfg.SkillThreshold)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "{not json")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestFromEnv_FillsOnlyEmptyFields(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://from-env:7687")
	t.Setenv("GOOGLE_API_KEY", "env-key")

	cfg := &Config{APIKey: "explicit-key"}
	cfg.FromEnv()

	assert.Equal(t, "bolt://from-env:7687", cfg.Neo4jURI)
	assert.Equal(t, "explicit-key", cfg.APIKey, "explicit values win over env")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultMaxHops, cfg.MaxHops)
}

func TestValidate(t *testing.T) {
	valid := &Config{Neo4jURI: "bolt://localhost:7687", APIKey: "key", MaxHops: 4}
	assert.NoError(t, valid.Validate())

	missingURI := &Config{APIKey: "key"}
	assert.Error(t, missingURI.Validate())

	missingKey := &Config{Neo4jURI: "bolt://localhost:7687"}
	assert.Error(t, missingKey.Validate())

	badHops := &Config{Neo4jURI: "bolt://x", APIKey: "key", MaxHops: 9}
	assert.Error(t, badHops.Validate())

	badThreshold := &Config{Neo4jURI: "bolt://x", APIKey: "key", SkillThreshold: 1.5}
	assert.Error(t, badThreshold.Validate())
}
