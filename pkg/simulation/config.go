package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)

// ErrUnsupportedFormat is returned by LoadConfig for an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

type Config struct {
	// Timing
	TickDelayMs int `json:"tickDelayMs" toml:"tickDelayMs" yaml:"tickDelayMs"`

	// World
	NeighborhoodSize float64           `json:"neighborhoodSize" toml:"neighborhoodSize" yaml:"neighborhoodSize"`
	CollisionRadius  float64           `json:"collisionRadius" toml:"collisionRadius" yaml:"collisionRadius"`
	Nest             geometry.Vector2D `json:"nest" toml:"nest" yaml:"nest"`
	Obstacle         flock.Obstacle    `json:"obstacle" toml:"obstacle" yaml:"obstacle"`

	// Steering controls, live-adjustable once running
	Speed          float64 `json:"speed" toml:"speed" yaml:"speed"`
	Cohesion       float64 `json:"cohesion" toml:"cohesion" yaml:"cohesion"`
	Separation     float64 `json:"separation" toml:"separation" yaml:"separation"`
	Alignment      float64 `json:"alignment" toml:"alignment" yaml:"alignment"`
	NestAttraction float64 `json:"nestAttraction" toml:"nestAttraction" yaml:"nestAttraction"`
	Collisions     bool    `json:"collisions" toml:"collisions" yaml:"collisions"`

	// Population at start
	InitialEntities  int     `json:"initialEntities" toml:"initialEntities" yaml:"initialEntities"`
	InitialPredators int     `json:"initialPredators" toml:"initialPredators" yaml:"initialPredators"`
	InitialFlocks    int     `json:"initialFlocks" toml:"initialFlocks" yaml:"initialFlocks"`
	FlockSize        int     `json:"flockSize" toml:"flockSize" yaml:"flockSize"`
	FlockAngle       float64 `json:"flockAngle" toml:"flockAngle" yaml:"flockAngle"`

	// Empty disables the Prometheus endpoint
	MetricsAddr string `json:"metricsAddr" toml:"metricsAddr" yaml:"metricsAddr"`
}

func DefaultConfig() *Config {
	return &Config{
		TickDelayMs:      20,
		NeighborhoodSize: flock.DefaultNeighborhoodSize,
		CollisionRadius:  flock.DefaultCollisionRadius,
		Nest:             flock.DefaultNest,
		Obstacle:         flock.DefaultObstacle(),
		Speed:            1,
		Cohesion:         0.2,
		Separation:       0.2,
		Alignment:        0.1,
		NestAttraction:   0,
		Collisions:       false,
		FlockSize:        2,
		FlockAngle:       90,
	}
}

// TickDelay is the pause between the draw and the rule phases of a tick.
func (c *Config) TickDelay() time.Duration {
	return time.Duration(c.TickDelayMs) * time.Millisecond
}

// Params is the initial value of the live controls.
func (c *Config) Params() Params {
	return Params{
		Speed:          c.Speed,
		Cohesion:       c.Cohesion,
		Separation:     c.Separation,
		Alignment:      c.Alignment,
		NestAttraction: c.NestAttraction,
		Collisions:     c.Collisions,
		FlockSize:      c.FlockSize,
		FlockAngle:     c.FlockAngle,
	}
}

// Validate checks the whole configuration against the embedded schema.
func (c *Config) Validate() error {
	doc, err := toJSONDocument(c)
	if err != nil {
		return err
	}
	if err := configSchema.Validate(doc); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// LoadConfig reads a JSON, TOML or YAML file, chosen by extension, on top of DefaultConfig.
// Both the file content and the merged result are validated against the schema.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var (
		raw       map[string]any
		decodeRaw func([]byte, any) error
		decodeCfg func([]byte, *Config) error
	)
	switch ext := strings.ToLower(filepath.Ext(configFile)); ext {
	case ".json":
		decodeRaw = json.Unmarshal
		decodeCfg = func(b []byte, c *Config) error { return json.Unmarshal(b, c) }
	case ".toml":
		decodeRaw = toml.Unmarshal
		decodeCfg = func(b []byte, c *Config) error { return toml.Unmarshal(b, c) }
	case ".yaml", ".yml":
		decodeRaw = yaml.Unmarshal
		decodeCfg = func(b []byte, c *Config) error { return yaml.Unmarshal(b, c) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := decodeRaw(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	doc, err := toJSONDocument(raw)
	if err != nil {
		return nil, err
	}
	if err := configSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeCfg(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toJSONDocument turns any decoded value into the generic JSON shape the validator expects.
func toJSONDocument(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return doc, nil
}
