package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fieldline/dayboard/core/metrics"
	"github.com/fieldline/dayboard/infra/mqtt"
	"github.com/fieldline/dayboard/infra/store"
)

// Config is the whole service configuration. The crew roster and job-type
// catalog live here because they are read-only collaborators of the board,
// not mutable schedule state.
type Config struct {
	Board    BoardConfig              `json:"board"`
	Crews    []CrewConfig             `json:"crews"`
	JobTypes map[string]JobTypeConfig `json:"job_types"`
	Store    store.Config             `json:"store"`
	Metrics  metrics.Config           `json:"metrics"`
	Publish  mqtt.Config              `json:"publish"`
}

// Load reads the configuration file (yaml or json by extension) and applies
// DAYBOARD_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DAYBOARD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dayboard_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Board.SetDefaults()
	cfg.Store.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Publish.SetDefaults()
	if err := cfg.Board.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateCrews(cfg.Crews); err != nil {
		return nil, err
	}
	return &cfg, nil
}
