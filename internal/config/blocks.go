package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Blocks maps the chatbot's OpenBuilder block names to their deployment-specific
// block ids. Buttons and quick replies that jump to another block need these ids,
// so they are loaded from a config file rather than hardcoded.
type Blocks struct {
	Confirm         string `yaml:"confirm"`
	AddLunchMenu    string `yaml:"add_lunch_menu"`
	AddDinnerMenu   string `yaml:"add_dinner_menu"`
	ModifyMenu      string `yaml:"modify_menu"`
	DeleteMenu      string `yaml:"delete_menu"`
	DeleteAllMenus  string `yaml:"delete_all_menus"`
	RestaurantInfo  string `yaml:"restaurant_info"`
	ClassroomDetail string `yaml:"classroom_detail"`
	UnitInfo        string `yaml:"unit_info"`
	Login           string `yaml:"login"`
}

func LoadBlocks(path string) (Blocks, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Blocks{}, fmt.Errorf("failed to read block map: %w", err)
	}
	var blocks Blocks
	if err := yaml.Unmarshal(b, &blocks); err != nil {
		return Blocks{}, fmt.Errorf("failed to parse block map: %w", err)
	}
	return blocks, nil
}
