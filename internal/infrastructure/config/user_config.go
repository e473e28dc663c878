package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// UserConfig represents user preferences stored in ~/.production-planner/config.json
// Banned entries here are added to the ones from the main configuration
type UserConfig struct {
	// Raw resources the user never wants extracted (item keys or names)
	BannedInputs []string `json:"banned_inputs,omitempty"`

	// Recipes the user never wants used
	BannedRecipes []string `json:"banned_recipes,omitempty"`

	// Default output format of the plan command
	DefaultFormat string `json:"default_format,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a new user config handler
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".production-planner"))
}

// NewUserConfigHandlerAt creates a handler storing config.json in configDir
func NewUserConfigHandlerAt(configDir string) (*UserConfigHandler, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(configDir, "config.json"),
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// BanInput adds a raw resource to the banned inputs
func (h *UserConfigHandler) BanInput(item string) error {
	return h.update(func(config *UserConfig) {
		config.BannedInputs = addUnique(config.BannedInputs, item)
	})
}

// UnbanInput removes a raw resource from the banned inputs
func (h *UserConfigHandler) UnbanInput(item string) error {
	return h.update(func(config *UserConfig) {
		config.BannedInputs = slices.DeleteFunc(config.BannedInputs, func(s string) bool { return s == item })
	})
}

// BanRecipe adds a recipe to the banned recipes
func (h *UserConfigHandler) BanRecipe(recipe string) error {
	return h.update(func(config *UserConfig) {
		config.BannedRecipes = addUnique(config.BannedRecipes, recipe)
	})
}

// UnbanRecipe removes a recipe from the banned recipes
func (h *UserConfigHandler) UnbanRecipe(recipe string) error {
	return h.update(func(config *UserConfig) {
		config.BannedRecipes = slices.DeleteFunc(config.BannedRecipes, func(s string) bool { return s == recipe })
	})
}

// SetDefaultFormat sets the default plan output format
func (h *UserConfigHandler) SetDefaultFormat(format string) error {
	return h.update(func(config *UserConfig) {
		config.DefaultFormat = format
	})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}

func (h *UserConfigHandler) update(mutate func(*UserConfig)) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	mutate(config)
	return h.Save(config)
}

func addUnique(values []string, value string) []string {
	if slices.Contains(values, value) {
		return values
	}
	return append(values, value)
}
