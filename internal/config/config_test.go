package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MODE", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Mode)
	assert.False(t, cfg.DebugMode())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MODE", "debug")
	t.Setenv("BASE_URL", "https://example.com")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.DebugMode())
	assert.Equal(t, "https://example.com", cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid mode",
			mutate:  func(c *Config) { c.Mode = "staging" },
			wantErr: true,
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: true,
		},
		{
			name:    "long jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "a-secret-key-that-is-long-enough-to-pass" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Port: "8080", LogLevel: "info", Mode: "production"}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadRoutesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	content := `
routes:
  - methods: [GET]
    pattern: /user/{id}
    action: user/view
groups:
  - prefix: /api
    routes:
      - methods: [GET, POST]
        pattern: /items/{id}
        action: items/show
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rf, err := LoadRoutesFile(path)
	require.NoError(t, err)

	require.Len(t, rf.Routes, 1)
	assert.Equal(t, "/user/{id}", rf.Routes[0].Pattern)
	assert.Equal(t, "user/view", rf.Routes[0].Action)

	require.Len(t, rf.Groups, 1)
	assert.Equal(t, "/api", rf.Groups[0].Prefix)
	assert.Equal(t, []string{"GET", "POST"}, rf.Groups[0].Routes[0].Methods)
}

func TestLoadRoutesFileInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"missing pattern", "routes:\n  - action: user/view\n"},
		{"missing action", "routes:\n  - pattern: /user/{id}\n"},
		{"group without prefix", "groups:\n  - routes:\n      - pattern: /x\n        action: a/b\n"},
		{"broken yaml", "routes: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := LoadRoutesFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRoutesFileMissing(t *testing.T) {
	_, err := LoadRoutesFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
