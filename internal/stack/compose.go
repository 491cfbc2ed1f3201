// compose.go generates a docker-compose.yml equivalent of the dev stack.
//
// `janus dev compose` exists for users who want to run the stack under
// plain docker compose (CI jobs, editors with compose integration). The
// generated file mirrors exactly what `dev up` creates: the same images,
// mounts, labels, and network topology, so containers started either way
// are interchangeable.
package stack

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/janus-labs/janus/internal/docker"
	"github.com/janus-labs/janus/internal/model"
)

// composeFile is the YAML document structure serialized by ExportCompose.
// Only the compose fields the stack actually needs are modeled.
type composeFile struct {
	// Name sets COMPOSE_PROJECT_NAME, which prefixes container, network,
	// and volume names exactly like the stack name does in `dev up`.
	Name string `yaml:"name"`

	Services map[string]composeService `yaml:"services"`

	// Volumes declares the named Redis data volume. The nested map is
	// empty because only the name matters; compose fills in defaults.
	Volumes map[string]composeVolume `yaml:"volumes"`
}

// composeService models a single service entry. container_name is pinned
// to the same names `dev up` assigns, so the in-network Redis hostname
// (and therefore JANUS_REDIS_URL) is identical under both runners.
type composeService struct {
	ContainerName string            `yaml:"container_name,omitempty"`
	Image         string            `yaml:"image,omitempty"`
	Build         *composeBuild     `yaml:"build,omitempty"`
	Command       []string          `yaml:"command,omitempty"`
	WorkingDir    string            `yaml:"working_dir,omitempty"`
	Environment   map[string]string `yaml:"environment,omitempty"`
	Ports         []string          `yaml:"ports,omitempty"`
	Volumes       []string          `yaml:"volumes,omitempty"`
	DependsOn     []string          `yaml:"depends_on,omitempty"`
	Labels        map[string]string `yaml:"labels"`
}

// composeBuild models the build section of the app service.
type composeBuild struct {
	Context    string            `yaml:"context"`
	Dockerfile string            `yaml:"dockerfile,omitempty"`
	Args       map[string]string `yaml:"args,omitempty"`
}

// composeVolume is an empty placeholder; named volumes need no options.
type composeVolume struct{}

// ExportCompose renders the stack configuration as docker-compose YAML.
//
// The version and buildArgs parameters come from the same `git describe`
// derivation `dev build` uses, so the compose file tags and builds the
// identical image. A header comment marks the file as generated.
func ExportCompose(cfg *Config, version string, buildArgs map[string]string) ([]byte, error) {
	now := time.Now()

	appLabels := docker.BuildLabels(cfg.Name, model.RoleApp, cfg.WorkspacePath, version, now)
	redisLabels := docker.BuildLabels(cfg.Name, model.RoleRedis, cfg.WorkspacePath, "", now)

	app := composeService{
		ContainerName: cfg.ContainerName(model.RoleApp),
		Image:         cfg.ImageTag(version),
		Build: &composeBuild{
			Context:    ".",
			Dockerfile: cfg.Dockerfile,
			Args:       buildArgs,
		},
		Command:     cfg.Command,
		WorkingDir:  cfg.Workdir,
		Environment: appEnvironment(cfg),
		Volumes:     []string{fmt.Sprintf(".:%s", cfg.Workdir)},
		DependsOn:   []string{"redis"},
		Labels:      appLabels,
	}

	redis := composeService{
		ContainerName: cfg.ContainerName(model.RoleRedis),
		Image:         cfg.RedisImage,
		Volumes:       []string{cfg.Volume + ":/data"},
		Labels:        redisLabels,
	}
	if cfg.RedisPublished() {
		redis.Ports = []string{fmt.Sprintf("%d:6379", cfg.RedisPort)}
	}

	doc := composeFile{
		Name: cfg.Name,
		Services: map[string]composeService{
			"app":   app,
			"redis": redis,
		},
		Volumes: map[string]composeVolume{
			cfg.Volume: {},
		},
	}

	yamlBytes, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize compose YAML: %w", err)
	}

	header := fmt.Sprintf(
		"# Generated by janus for stack %q\n# Regenerate with `janus dev compose` rather than editing.\n",
		cfg.Name,
	)

	return []byte(header + string(yamlBytes)), nil
}

// appEnvironment merges the config's env map with the in-stack Redis URL.
// An explicit JANUS_REDIS_URL in the config wins over the derived one.
func appEnvironment(cfg *Config) map[string]string {
	env := map[string]string{
		"JANUS_REDIS_URL": cfg.RedisURL(),
	}
	for k, v := range cfg.Env {
		env[k] = v
	}
	return env
}
