package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable values for the compact spellbook
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Spellbook SpellbookConfig `yaml:"spellbook"`
	Events    EventConfig     `yaml:"events"`
	UI        UIConfig        `yaml:"ui"`
	Sounds    SoundConfig     `yaml:"sounds"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type SpellbookConfig struct {
	SpellsPerPage int `yaml:"spells_per_page"`
	FlyoutButtons int `yaml:"flyout_buttons"` // max ranks a flyout can show
	MaxSlots      int `yaml:"max_slots"`      // highest slot id the host will ever assign
}

type EventConfig struct {
	// Spammy lists event names treated as high-frequency and
	// argument-insensitive during queue replay (cooldown ticks etc.)
	Spammy []string `yaml:"spammy"`
}

type UIConfig struct {
	FlashBlinkFrames int `yaml:"flash_blink_frames"`
	ButtonWidth      int `yaml:"button_width"`
	ButtonHeight     int `yaml:"button_height"`
	ButtonSpacing    int `yaml:"button_spacing"`
	PanelColumns     int `yaml:"panel_columns"`
}

type SoundConfig struct {
	Open     string `yaml:"open"`
	Close    string `yaml:"close"`
	PageTurn string `yaml:"page_turn"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from config.yaml
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = &config

	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetSpellsPerPage() int {
	if c.Spellbook.SpellsPerPage <= 0 {
		return 12
	}
	return c.Spellbook.SpellsPerPage
}

func (c *Config) GetFlyoutButtons() int {
	if c.Spellbook.FlyoutButtons <= 0 {
		return 11
	}
	return c.Spellbook.FlyoutButtons
}

func (c *Config) GetMaxSlots() int {
	if c.Spellbook.MaxSlots <= 0 {
		return 1024
	}
	return c.Spellbook.MaxSlots
}
