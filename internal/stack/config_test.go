package stack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-labs/janus/internal/model"
)

// writeConfig creates a stack config file at the given relative path
// inside a fresh temp workspace and returns the workspace root.
func writeConfig(t *testing.T, rel, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return dir
}

// TestParse verifies JSONC parsing, including comments and trailing commas.
func TestParse(t *testing.T) {
	t.Run("full config with comments", func(t *testing.T) {
		raw := `{
			// the workbench stack
			"name": "janus",
			"image": "janus-dev",
			"dockerfile": "docker/Dockerfile",
			"redisImage": "redis/redis-stack-server:7.4.0-v3",
			"redisPort": 16379,
			"volume": "janus-data",
			"workdir": "/src",
			"shell": ["/bin/zsh"],
			"command": ["sleep", "infinity"],
			"uvVersion": "0.6.0",
			"env": {"JANUS_ENV": "dev"}, // trailing comma next
		}`

		cfg, err := Parse([]byte(raw))
		require.NoError(t, err)

		assert.Equal(t, "janus", cfg.Name)
		assert.Equal(t, "janus-dev", cfg.Image)
		assert.Equal(t, "docker/Dockerfile", cfg.Dockerfile)
		assert.Equal(t, 16379, cfg.RedisPort)
		assert.Equal(t, "janus-data", cfg.Volume)
		assert.Equal(t, "/src", cfg.Workdir)
		assert.Equal(t, []string{"/bin/zsh"}, cfg.Shell)
		assert.Equal(t, "0.6.0", cfg.UVVersion)
		assert.Equal(t, "dev", cfg.Env["JANUS_ENV"])
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		_, err := Parse([]byte(`{"name": `))
		assert.Error(t, err)
	})
}

// TestLoadDefaults verifies that a minimal config picks up all defaults,
// with the stack name derived from the workspace directory.
func TestLoadDefaults(t *testing.T) {
	dir := writeConfig(t, ".janus/stack.jsonc", `{}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	base := filepath.Base(dir)
	assert.Equal(t, base, cfg.Name)
	assert.Equal(t, base, cfg.Image)
	assert.Equal(t, DefaultRedisImage, cfg.RedisImage)
	assert.Equal(t, DefaultRedisPort, cfg.RedisPort)
	assert.Equal(t, base+"-redis-data", cfg.Volume)
	assert.Equal(t, DefaultWorkdir, cfg.Workdir)
	assert.Equal(t, []string{"/bin/bash"}, cfg.Shell)
	assert.Equal(t, []string{"sleep", "infinity"}, cfg.Command)
	assert.Equal(t, DefaultUVVersion, cfg.UVVersion)
	assert.Equal(t, dir, cfg.WorkspacePath)
}

// TestLoadSearchOrder verifies the config search path priority and the
// not-found error code.
func TestLoadSearchOrder(t *testing.T) {
	t.Run("root stack.jsonc is found", func(t *testing.T) {
		dir := writeConfig(t, "stack.jsonc", `{"name": "fromroot"}`)
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "fromroot", cfg.Name)
	})

	t.Run(".janus dir wins over root", func(t *testing.T) {
		dir := writeConfig(t, ".janus/stack.jsonc", `{"name": "fromdir"}`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stack.jsonc"),
			[]byte(`{"name": "fromroot"}`), 0o644))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "fromdir", cfg.Name)
	})

	t.Run("missing config yields ExitConfigError", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)

		cliErr, ok := err.(*model.CLIError)
		require.True(t, ok)
		assert.Equal(t, model.ExitConfigError, cliErr.Code)
	})
}

// TestValidate covers the validation rules applied after defaulting.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}},
		{name: "bad stack name", mutate: func(c *Config) { c.Name = "-janus" }, wantErr: true},
		{name: "redis port too large", mutate: func(c *Config) { c.RedisPort = 70000 }, wantErr: true},
		{name: "redis port disabled", mutate: func(c *Config) { c.RedisPort = -1 }},
		{name: "relative workdir", mutate: func(c *Config) { c.Workdir = "src" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{WorkspacePath: "/home/dev/janus"}
			cfg.applyDefaults()
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

// TestDerivedNames verifies resource name derivation from the config.
func TestDerivedNames(t *testing.T) {
	cfg := &Config{Name: "janus", Image: "janus", WorkspacePath: "/home/dev/janus"}
	cfg.applyDefaults()

	assert.Equal(t, "janus-app", cfg.ContainerName(model.RoleApp))
	assert.Equal(t, "janus-redis", cfg.ContainerName(model.RoleRedis))
	assert.Equal(t, "janus-net", cfg.NetworkName())
	assert.Equal(t, "janus:v0.3.1", cfg.ImageTag("v0.3.1"))
	assert.Equal(t, "redis://janus-redis:6379", cfg.RedisURL())
	assert.True(t, cfg.RedisPublished())

	cfg.RedisPort = -1
	assert.False(t, cfg.RedisPublished())
}
