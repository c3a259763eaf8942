package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultEnv, cfg.Env)
	assert.Equal(t, defaultDBName, cfg.Database.Name)
	assert.True(t, cfg.IsDev())
	assert.Empty(t, cfg.Database.URI)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8080
env: production
database:
  uri: mongodb://localhost:27017
  name: appdb
jwt_secret: topsecret
allowed_origins:
  - https://example.com
mail:
  enable: true
  host: smtp.example.com
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "appdb", cfg.Database.Name)
	assert.Equal(t, "topsecret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Mail.Enable)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
}

func TestLoadEnvFallbacks(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("MONGODB_URI", "mongodb://envhost:27017")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "mongodb://envhost:27017", cfg.Database.URI)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}

func TestFileBeatsEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
