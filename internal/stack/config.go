package stack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/janus-labs/janus/internal/model"
)

// Default values applied when the corresponding stack.jsonc field is omitted.
// The Redis image must be TimeSeries-capable because the stream service
// stores BBO updates with TS.ADD.
const (
	// DefaultRedisImage is the Redis image used when none is configured.
	DefaultRedisImage = "redis/redis-stack-server:7.4.0-v3"

	// DefaultRedisPort is the host port Redis is published on.
	DefaultRedisPort = 6379

	// DefaultWorkdir is the mount point of the project workspace inside
	// the app container.
	DefaultWorkdir = "/workspace"

	// DefaultUVVersion is the uv package manager version pinned into the
	// image build when the config does not specify one.
	DefaultUVVersion = "0.5.24"
)

// Config represents a parsed and validated stack.jsonc file.
//
// JSON tags match the keys in stack.jsonc. Fields left empty in the file
// are filled in by applyDefaults, so a minimal config is just "{}".
type Config struct {
	// Name is the stack name. Defaults to the workspace directory name.
	// Container, network, and volume names are derived from it.
	Name string `json:"name,omitempty"`

	// Image is the repository part of the app image reference.
	// Defaults to the stack name. `dev build` appends the version tag.
	Image string `json:"image,omitempty"`

	// Dockerfile is the path to the app Dockerfile, relative to the
	// workspace root. Empty uses Docker's default lookup.
	Dockerfile string `json:"dockerfile,omitempty"`

	// RedisImage is the Redis container image. Must include the
	// TimeSeries module.
	RedisImage string `json:"redisImage,omitempty"`

	// RedisPort is the host port the Redis container is published on.
	// Set to -1 to keep Redis reachable only inside the stack network.
	RedisPort int `json:"redisPort,omitempty"`

	// Volume is the name of the Redis data volume.
	// Defaults to "<name>-redis-data".
	Volume string `json:"volume,omitempty"`

	// Workdir is the workspace mount point inside the app container.
	Workdir string `json:"workdir,omitempty"`

	// Shell is the command `dev shell` runs when no explicit command is
	// given. Defaults to ["/bin/bash"].
	Shell []string `json:"shell,omitempty"`

	// Command is the long-running command the app container executes,
	// keeping it alive for `dev shell` to exec into.
	// Defaults to ["sleep", "infinity"].
	Command []string `json:"command,omitempty"`

	// UVVersion pins the uv package manager version baked into the image
	// (the UV_VERSION build arg).
	UVVersion string `json:"uvVersion,omitempty"`

	// Env sets additional environment variables in the app container.
	Env map[string]string `json:"env,omitempty"`

	// WorkspacePath is the absolute path of the project root the config
	// was loaded from. Not read from the file; set by Load.
	WorkspacePath string `json:"-"`
}

// configSearchPaths lists the stack config locations probed by Find,
// relative to the workspace root, in priority order.
var configSearchPaths = []string{
	filepath.Join(".janus", "stack.jsonc"),
	filepath.Join(".janus", "stack.json"),
	"stack.jsonc",
}

// Find locates the stack config file under the given workspace root.
// Returns the absolute path of the first existing candidate, or a
// CLIError with ExitConfigError if none exists.
func Find(workspacePath string) (string, error) {
	for _, rel := range configSearchPaths {
		candidate := filepath.Join(workspacePath, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", model.NewCLIError(model.ExitConfigError,
		fmt.Sprintf("no stack config found under %s (looked for %s)",
			workspacePath, configSearchPaths))
}

// Load reads, parses, defaults, and validates the stack config for the
// given workspace root. This is the single entry point used by all
// `dev` subcommands.
func Load(workspacePath string) (*Config, error) {
	abs, err := filepath.Abs(workspacePath)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("cannot resolve workspace path %q", workspacePath), err)
	}

	path, err := Find(abs)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("cannot read stack config %s", path), err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid stack config %s", path), err)
	}

	cfg.WorkspacePath = abs
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid stack config %s", path), err)
	}

	return cfg, nil
}

// Parse decodes stack.jsonc bytes into a Config. JSONC comments and
// trailing commas are stripped first, so the file may be annotated
// freely. Defaults are NOT applied here; callers that skip Load must
// call applyDefaults through Load or set fields themselves.
func Parse(raw []byte) (*Config, error) {
	clean := jsonc.ToJSON(raw)

	var cfg Config
	if err := json.Unmarshal(clean, &cfg); err != nil {
		return nil, fmt.Errorf("parse stack config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in zero-valued fields. The stack name defaults to
// the workspace directory name so that a fresh checkout needs no config
// edits before `dev up`.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = filepath.Base(c.WorkspacePath)
	}
	if c.Image == "" {
		c.Image = c.Name
	}
	if c.RedisImage == "" {
		c.RedisImage = DefaultRedisImage
	}
	if c.RedisPort == 0 {
		c.RedisPort = DefaultRedisPort
	}
	if c.Volume == "" {
		c.Volume = c.Name + "-redis-data"
	}
	if c.Workdir == "" {
		c.Workdir = DefaultWorkdir
	}
	if len(c.Shell) == 0 {
		c.Shell = []string{"/bin/bash"}
	}
	if len(c.Command) == 0 {
		c.Command = []string{"sleep", "infinity"}
	}
	if c.UVVersion == "" {
		c.UVVersion = DefaultUVVersion
	}
}

// Validate checks the configuration for values that would produce broken
// Docker resources. It assumes applyDefaults has run.
func (c *Config) Validate() error {
	if err := model.ValidateName(c.Name); err != nil {
		return err
	}
	if c.RedisPort != -1 && (c.RedisPort < 1 || c.RedisPort > 65535) {
		return fmt.Errorf("redisPort %d out of range (1-65535, or -1 to disable publishing)", c.RedisPort)
	}
	if !filepath.IsAbs(c.Workdir) {
		return fmt.Errorf("workdir %q must be an absolute path", c.Workdir)
	}
	return nil
}

// RedisPublished reports whether the Redis port is published to the host.
func (c *Config) RedisPublished() bool {
	return c.RedisPort != -1
}

// ContainerName derives the Docker container name for a stack role,
// e.g. "janus-app" or "janus-redis".
func (c *Config) ContainerName(role model.ContainerRole) string {
	return c.Name + "-" + role.String()
}

// NetworkName derives the name of the stack's bridge network.
func (c *Config) NetworkName() string {
	return c.Name + "-net"
}

// ImageTag derives the full app image reference for a version string,
// e.g. "janus:v0.3.1-4-gdeadbee".
func (c *Config) ImageTag(version string) string {
	return c.Image + ":" + version
}

// RedisURL returns the Redis connection URL as seen from inside the
// stack network, where the Redis container is reachable by name.
func (c *Config) RedisURL() string {
	return fmt.Sprintf("redis://%s:6379", c.ContainerName(model.RoleRedis))
}
