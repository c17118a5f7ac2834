// Package config loads the engine configuration descriptor: a JSON file
// with window, navigation, gui, log, audio, cache, and debug sections.
// The file is schema-validated before decoding, then environment
// variables (VANTAGE_*) override selected fields.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/marisk/vantage/loader"
)

// Config is the full engine configuration.
type Config struct {
	World      string     `json:"world" env:"VANTAGE_WORLD"`
	Database   string     `json:"database" env:"VANTAGE_DATABASE"`
	Window     Window     `json:"window"`
	Navigation Navigation `json:"navigation"`
	GUI        GUI        `json:"gui"`
	Log        Log        `json:"log"`
	Audio      Audio      `json:"audio"`
	Cache      Cache      `json:"cache"`
	Debug      Debug      `json:"debug"`
}

// Window holds window-management settings for the rendering collaborator.
type Window struct {
	Size  [2]int `json:"size"`
	Title string `json:"title"`
}

// Navigation sizes the screen-edge and center click regions used to map
// clicks outside action regions to exit directions. Widths and breadths
// are fractions of the window dimension.
type Navigation struct {
	EdgeMarginWidth    float64 `json:"edge_margin_width"`
	EdgeRegionBreadth  float64 `json:"edge_region_breadth"`
	ForwardRegionWidth float64 `json:"forward_region_width"`
	IndicatorPadding   int     `json:"indicator_padding"`
}

// GUI holds widget settings for the GUI collaborator.
type GUI struct {
	TextboxHeight int `json:"textbox_height"`
	FontSize      int `json:"font_size"`
	ConsoleLines  int `json:"console_lines"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `json:"level" env:"VANTAGE_LOG_LEVEL"`
	Format string `json:"format" env:"VANTAGE_LOG_FORMAT"`
	File   string `json:"file"`
}

// Audio holds mixer levels for the audio collaborator.
type Audio struct {
	MusicVolume float64 `json:"music_volume"`
	SFXVolume   float64 `json:"sfx_volume"`
}

// Cache holds resource-cache settings queried by asset collaborators.
type Cache struct {
	TTL int `json:"ttl"`
}

// Debug holds debug flags queried by collaborators.
type Debug struct {
	Enabled     bool `json:"enabled" env:"VANTAGE_DEBUG"`
	ShowRegions bool `json:"show_regions"`
}

// Load reads, validates, and decodes a config file, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return cfg, nil
}

// Parse validates raw config JSON against the config schema and decodes
// it. No environment overrides are applied.
func Parse(data []byte) (*Config, error) {
	if err := loader.ValidateSchema("config", data); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Default returns a usable configuration for hosts that run the engine
// without a config file (tests, embedding).
func Default() *Config {
	return &Config{
		World:    "world",
		Database: "save.json",
		Window:   Window{Size: [2]int{1024, 768}, Title: "Vantage"},
		Navigation: Navigation{
			EdgeMarginWidth:    0.1,
			EdgeRegionBreadth:  0.1,
			ForwardRegionWidth: 0.2,
			IndicatorPadding:   10,
		},
		GUI:   GUI{TextboxHeight: 150, FontSize: 16, ConsoleLines: 20},
		Log:   Log{Level: "info", Format: "text"},
		Audio: Audio{MusicVolume: 0.8, SFXVolume: 0.8},
		Cache: Cache{TTL: 300},
		Debug: Debug{},
	}
}
