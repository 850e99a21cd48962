// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatconsole.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.chatconsole/config.toml
//   - ~/.chatconsole/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/chatconsole/internal/chat"
	"github.com/jeranaias/chatconsole/internal/util"
)

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatconsole configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Chat engine configuration
	Chat ChatConfig `toml:"chat" json:"chat"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ChatConfig configures the chat backend.
type ChatConfig struct {
	// ConsoleScrollback is how many lines the console keeps.
	ConsoleScrollback int `toml:"console_scrollback" json:"console_scrollback"`
	// RecentMessages is how many lines the recent-messages HUD keeps (2-20).
	RecentMessages int `toml:"recent_messages" json:"recent_messages"`
	// RecentMaxAge is the age in seconds after which HUD lines expire.
	RecentMaxAge float64 `toml:"recent_max_age" json:"recent_max_age"`
	// HistoryLimit is the number of submitted lines the prompt remembers.
	HistoryLimit int `toml:"history_limit" json:"history_limit"`
	// Prompt is the fixed prefix shown before the edit line.
	Prompt string `toml:"prompt" json:"prompt"`
	// Nickname is the local player's name; submitted lines are echoed under it.
	Nickname string `toml:"nickname" json:"nickname"`
	// Nicknames are extra nick completion candidates.
	Nicknames []string `toml:"nicknames" json:"nicknames"`
	// ClickableWeblinks detects http(s) links and renders them as clickable fragments.
	ClickableWeblinks bool `toml:"clickable_weblinks" json:"clickable_weblinks"`
	// WeblinkColor is the hex colour used for links.
	WeblinkColor string `toml:"weblink_color" json:"weblink_color"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme"`
	// WheelRows is how many rows one mouse wheel notch scrolls.
	WheelRows int `toml:"wheel_rows" json:"wheel_rows"`
	// TickMillis is the interval at which recent messages are aged.
	TickMillis int `toml:"tick_millis" json:"tick_millis"`
	// ShowHUD starts the UI on the recent-messages view instead of the console.
	ShowHUD bool `toml:"show_hud" json:"show_hud"`
}

// =============================================================================
// DEFAULT VALUES
// =============================================================================

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Chat: ChatConfig{
			ConsoleScrollback: chat.DefaultConsoleScrollback,
			RecentMessages:    chat.DefaultRecentScrollback,
			RecentMaxAge:      chat.DefaultRecentMaxAge,
			HistoryLimit:      chat.DefaultHistoryLimit,
			Prompt:            chat.DefaultPrompt,
			Nickname:          "singleplayer",
			ClickableWeblinks: false,
			WeblinkColor:      "#8888FF",
		},
		UI: UIConfig{
			Theme:      "auto",
			WheelRows:  3,
			TickMillis: 100,
			ShowHUD:    true,
		},
	}
}

// BackendOptions translates the chat section into chat.Backend options.
func (c *Config) BackendOptions() []chat.Option {
	opts := []chat.Option{
		chat.WithConsoleScrollback(c.Chat.ConsoleScrollback),
		chat.WithRecentScrollback(c.Chat.RecentMessages),
		chat.WithHistoryLimit(c.Chat.HistoryLimit),
		chat.WithPrompt(c.Chat.Prompt),
		chat.WithRecentMaxAge(c.Chat.RecentMaxAge),
	}
	if c.Chat.ClickableWeblinks {
		opts = append(opts, chat.WithBufferOptions(chat.WithWeblinks(c.Chat.WeblinkColor)))
	}
	return opts
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the directory holding the config files.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatconsole"), nil
}

// ConfigPathTOML returns the path of the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path of the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.chatconsole/config.toml, falling back to config.json and then
// to defaults. Environment overrides are applied in every case. A file that
// exists but cannot be decoded yields the defaults together with the error.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			break
		}
		return cfg, nil
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads a config file, choosing the format from its extension.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# chatconsole configuration file")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Chat.ConsoleScrollback < 1 {
		errs = append(errs, ValidationError{
			Field:   "chat.console_scrollback",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Chat.ConsoleScrollback),
		})
	}
	if c.Chat.RecentMessages < chat.MinRecentLines || c.Chat.RecentMessages > chat.MaxRecentLines {
		errs = append(errs, ValidationError{
			Field: "chat.recent_messages",
			Message: fmt.Sprintf("must be between %d and %d, got %d",
				chat.MinRecentLines, chat.MaxRecentLines, c.Chat.RecentMessages),
		})
	}
	if c.Chat.RecentMaxAge <= 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.recent_max_age",
			Message: fmt.Sprintf("must be positive, got %g", c.Chat.RecentMaxAge),
		})
	}
	if c.Chat.HistoryLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.history_limit",
			Message: fmt.Sprintf("must not be negative, got %d", c.Chat.HistoryLimit),
		})
	}
	if strings.ContainsAny(c.Chat.Prompt, "\r\n") {
		errs = append(errs, ValidationError{
			Field:   "chat.prompt",
			Message: "must be a single line",
		})
	}
	if c.Chat.WeblinkColor != "" {
		if _, err := colorful.Hex(c.Chat.WeblinkColor); err != nil {
			errs = append(errs, ValidationError{
				Field:   "chat.weblink_color",
				Message: fmt.Sprintf("invalid hex colour '%s'", c.Chat.WeblinkColor),
			})
		}
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.WheelRows < 1 {
		errs = append(errs, ValidationError{
			Field:   "ui.wheel_rows",
			Message: fmt.Sprintf("must be at least 1, got %d", c.UI.WheelRows),
		})
	}
	if c.UI.TickMillis < 10 || c.UI.TickMillis > 10000 {
		errs = append(errs, ValidationError{
			Field:   "ui.tick_millis",
			Message: fmt.Sprintf("must be between 10 and 10000, got %d", c.UI.TickMillis),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills in values a partial file left empty.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Chat.Prompt == "" {
		c.Chat.Prompt = d.Chat.Prompt
	}
	if c.Chat.Nickname == "" {
		c.Chat.Nickname = d.Chat.Nickname
	}
	if c.Chat.WeblinkColor == "" {
		c.Chat.WeblinkColor = d.Chat.WeblinkColor
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHATCONSOLE_NICK: overrides chat.nickname
//   - CHATCONSOLE_SCROLLBACK: overrides chat.console_scrollback
//   - CHATCONSOLE_RECENT: overrides chat.recent_messages
//   - CHATCONSOLE_WEBLINKS: set to "1" or "true" to enable clickable weblinks
//   - CHATCONSOLE_PROMPT: overrides chat.prompt
//
// Unparsable numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if nick := os.Getenv("CHATCONSOLE_NICK"); nick != "" {
		c.Chat.Nickname = nick
	}

	if v := os.Getenv("CHATCONSOLE_SCROLLBACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Chat.ConsoleScrollback = n
		}
	}

	if v := os.Getenv("CHATCONSOLE_RECENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Chat.RecentMessages = n
		}
	}

	if v := os.Getenv("CHATCONSOLE_WEBLINKS"); v != "" {
		c.Chat.ClickableWeblinks = v == "1" || strings.ToLower(v) == "true"
	}

	if prompt := os.Getenv("CHATCONSOLE_PROMPT"); prompt != "" {
		c.Chat.Prompt = prompt
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "chat.prompt").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "chat.prompt").
// String values are converted to the field's type; a comma-separated string
// sets a string list.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %w", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %w", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, item := range strings.Split(strVal, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("toml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, name, keys)
			continue
		}
		*keys = append(*keys, name)
	}
}
