package host

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpellEntry holds the configuration for one known spell from YAML
type SpellEntry struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Ranks int    `yaml:"ranks"`
}

// SpellGroup is one group tab (skill school) of the player category
type SpellGroup struct {
	Name   string       `yaml:"name"`
	Spells []SpellEntry `yaml:"spells"`
}

// SpellTable holds the complete simulated spell state from YAML
type SpellTable struct {
	Player struct {
		Groups []SpellGroup `yaml:"groups"`
	} `yaml:"player"`
	Companion struct {
		Spells []SpellEntry `yaml:"spells"`
	} `yaml:"companion"`
}

// Global spell table for the simulated host
var Table *SpellTable

// validateSpellTable checks for entries the slot assignment cannot represent
func validateSpellTable(table *SpellTable) error {
	check := func(where string, spells []SpellEntry) error {
		for _, sp := range spells {
			if sp.Name == "" {
				return fmt.Errorf("%s: spell with empty name", where)
			}
			if sp.Ranks < 1 {
				return fmt.Errorf("%s: spell %q needs at least 1 rank, got %d", where, sp.Name, sp.Ranks)
			}
		}
		return nil
	}
	for _, g := range table.Player.Groups {
		if g.Name == "" {
			return fmt.Errorf("player group with empty name")
		}
		if err := check("player/"+g.Name, g.Spells); err != nil {
			return err
		}
	}
	return check("companion", table.Companion.Spells)
}

// LoadSpellTable loads the simulated spell state from a YAML file
func LoadSpellTable(filename string) (*SpellTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var table SpellTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}

	if err := validateSpellTable(&table); err != nil {
		return nil, err
	}

	Table = &table
	return &table, nil
}

// MustLoadSpellTable loads the spell table and panics on error
func MustLoadSpellTable(filename string) *SpellTable {
	table, err := LoadSpellTable(filename)
	if err != nil {
		panic("Failed to load spell table: " + err.Error())
	}
	return table
}
