package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/dex"
)

// Env holds the process-level settings read from environment variables.
type Env struct {
	ConfigPath string        `env:"TAPU_CONFIG" envDefault:"./tapu_config.json"`
	DBPath     string        `env:"TAPU_DB" envDefault:"./data/tapu.db"`
	Addr       string        `env:"TAPU_ADDR"`
	SessionTTL time.Duration `env:"TAPU_SESSION_TTL" envDefault:"24h"`
}

// ParseEnv reads the environment settings.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}

type rawConfig struct {
	MoveList    []battle.Move `json:"move_list"`
	SpeciesList []dex.Species `json:"species_list"`
	Server      *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the parsed game-data tables and the server address
// to bind to.
type LoadedConfig struct {
	Moves         []battle.Move
	Species       []dex.Species
	ServerAddress string
}

// LoadConfig reads the configuration file at path. It requires both
// `move_list` and `species_list` (snake_case); the engine has no built-in
// game data, so an empty table is a configuration error.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.MoveList) == 0 {
		return nil, fmt.Errorf("config file %s: move_list is empty (provide a 'move_list' array)", path)
	}
	if len(rc.SpeciesList) == 0 {
		return nil, fmt.Errorf("config file %s: species_list is empty (provide a 'species_list' array)", path)
	}

	// Cross-entry validation: unique names, sane numeric ranges.
	moveNames := make(map[string]struct{}, len(rc.MoveList))
	for _, m := range rc.MoveList {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("config file %s: move entry missing 'name'", path)
		}
		key := dex.Key(m.Name)
		if _, exists := moveNames[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate move '%s'", path, m.Name)
		}
		moveNames[key] = struct{}{}
		if m.Accuracy < 0 || m.Accuracy > 100 {
			return nil, fmt.Errorf("config file %s: move '%s' accuracy must be 0-100", path, m.Name)
		}
		if m.Secondary != nil && (m.Secondary.Chance <= 0 || m.Secondary.Chance > 100) {
			return nil, fmt.Errorf("config file %s: move '%s' secondary chance must be in (0,100]", path, m.Name)
		}
		switch m.Category {
		case battle.CategoryPhysical, battle.CategorySpecial, battle.CategoryStatus:
		default:
			return nil, fmt.Errorf("config file %s: move '%s' has unknown category '%s'", path, m.Name, m.Category)
		}
	}
	speciesNames := make(map[string]struct{}, len(rc.SpeciesList))
	for _, s := range rc.SpeciesList {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("config file %s: species entry missing 'name'", path)
		}
		key := dex.Key(s.Name)
		if _, exists := speciesNames[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate species '%s'", path, s.Name)
		}
		speciesNames[key] = struct{}{}
		if len(s.Types) == 0 || len(s.Types) > 2 {
			return nil, fmt.Errorf("config file %s: species '%s' must have 1-2 types", path, s.Name)
		}
	}

	addr := ":3001"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	return &LoadedConfig{
		Moves:         rc.MoveList,
		Species:       rc.SpeciesList,
		ServerAddress: addr,
	}, nil
}
