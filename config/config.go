// This file is part of Chimeraboy.
//
// Chimeraboy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chimeraboy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chimeraboy.  If not, see <https://www.gnu.org/licenses/>.

// Package config is the explicit configuration object for a session. There
// is no ambient global configuration anywhere in the project: components
// that need these values receive them at construction.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/chimeraboy/curated"
)

// Config collects every tunable of a session.
type Config struct {
	// number of frames between polls of the battle-active cell. polling
	// per-frame would be wasted work: battles begin and end at human speed
	PollCadence int `yaml:"poll_cadence"`

	Generation Generation `yaml:"generation"`
	Relay      Relay      `yaml:"relay"`

	// optional overrides for the guest address table. zero values mean
	// "use the standard address"
	Guest GuestOverrides `yaml:"guest"`
}

// Generation configures the creature providers.
type Generation struct {
	// URL of the network generation provider. empty means offline only
	ProviderURL string `yaml:"provider_url"`

	// request timeout in milliseconds
	TimeoutMs int `yaml:"timeout_ms"`

	// template for the prompt sent to the provider. the substring %TYPE%
	// is replaced with the type hint
	PromptTemplate string `yaml:"prompt_template"`

	// seed for the offline generator. the same seed produces the same
	// sequence of creatures
	Seed int64 `yaml:"seed"`

	// type hints cycled through by successive generation requests
	TypeHints []string `yaml:"type_hints"`
}

// Relay configures the observer websocket endpoint.
type Relay struct {
	// listen address for the observer endpoint. empty disables the relay
	Bind string `yaml:"bind"`
}

// GuestOverrides allows individual guest addresses to be replaced, for
// guest program revisions with a shifted memory map.
type GuestOverrides struct {
	BattleActive       uint16 `yaml:"battle_active"`
	BattleResult       uint16 `yaml:"battle_result"`
	SpriteRoutineEntry uint16 `yaml:"sprite_routine_entry"`
	FallbackReturn     uint16 `yaml:"fallback_return"`
	ReturnScanWindow   uint16 `yaml:"return_scan_window"`
}

// Default returns the configuration used in the absence of a file.
func Default() Config {
	return Config{
		PollCadence: 10,
		Generation: Generation{
			TimeoutMs:      15000,
			PromptTemplate: "a small %TYPE% creature for an 8-bit monster battler",
			Seed:           1,
			TypeHints:      []string{"fire", "water", "grass", "electric", "ghost"},
		},
	}
}

// DefaultPath returns the location of the configuration file consulted when
// no explicit path is given. The file is not required to exist.
func DefaultPath() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", curated.Errorf("config: %v", err)
	}
	return filepath.Join(d, "chimeraboy", "config.yaml"), nil
}

// Load reads a configuration file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, curated.Errorf("config: %v", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, curated.Errorf("config: %v", err)
	}

	if cfg.PollCadence < 1 {
		return cfg, curated.Errorf("config: poll_cadence must be at least 1")
	}

	return cfg, nil
}
