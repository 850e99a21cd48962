// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The "config" command: show, get, set, reset and path.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/chatconsole/internal/config"
)

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig handles the "config" command.
func HandleConfig(args Args, w io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args, w)

	case "get":
		return handleConfigGet(args, w)

	case "set":
		return handleConfigSet(args, w)

	case "reset":
		return handleConfigReset(args, w)

	case "path":
		path, err := configPath(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, path)
		return nil

	default:
		return NewValidationErrorWithExample("config subcommand", args.Subcommand,
			"expected show, get, set, reset or path", "chatconsole config set chat.recent_messages 10")
	}
}

// handleConfigShow lists every setting grouped by section.
func handleConfigShow(args Args, w io.Writer) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, TitleStyle.Render("chatconsole configuration"))
	section := ""
	for _, key := range config.GetAllKeys() {
		sec, name, nested := strings.Cut(key, ".")
		if !nested {
			sec, name = "", key
		}
		if sec != section {
			section = sec
			fmt.Fprintln(w)
			fmt.Fprintln(w, SectionStyle.Render("["+sec+"]"))
		}
		value, _ := cfg.Get(key)
		fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render(name+":"), ValueStyle.Render(formatValue(value)))
	}

	if path, err := configPath(args); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n", DimStyle.Render("Config file:"), path)
	}
	return nil
}

func handleConfigGet(args Args, w io.Writer) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("KEY", "chatconsole config get chat.nickname")
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	value, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return NewNotFoundError("config key", args.ConfigKey)
	}
	fmt.Fprintln(w, formatValue(value))
	return nil
}

// handleConfigSet changes one setting in the config file. Environment
// overrides are not written back.
func handleConfigSet(args Args, w io.Writer) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("KEY", "chatconsole config set chat.nickname sam")
	}
	if len(args.Raw) < 3 {
		return ErrMissingArgument("VALUE", "chatconsole config set "+args.ConfigKey+" VALUE")
	}

	path, err := configPath(args)
	if err != nil {
		return err
	}
	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}

	if _, err := cfg.Get(args.ConfigKey); err != nil {
		return NewNotFoundError("config key", args.ConfigKey)
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return NewValidationError(args.ConfigKey, args.ConfigVal, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := saveConfigFile(cfg, path); err != nil {
		return err
	}

	value, _ := cfg.Get(args.ConfigKey)
	fmt.Fprintf(w, "%s %s = %s\n", SuccessStyle.Render("Set"), args.ConfigKey, formatValue(value))
	return nil
}

func handleConfigReset(args Args, w io.Writer) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}
	if err := saveConfigFile(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Reset"), path)
	return nil
}

// readConfigFile decodes path over the defaults. A missing file yields the
// defaults.
func readConfigFile(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	load := config.LoadTOML
	if strings.HasSuffix(path, ".json") {
		load = config.LoadJSON
	}
	if err := load(cfg, path); err != nil {
		return nil, NewCommandError("config", "read", path, err)
	}
	return cfg, nil
}

func saveConfigFile(cfg *config.Config, path string) error {
	save := config.SaveTOML
	if strings.HasSuffix(path, ".json") {
		save = config.SaveJSON
	}
	if err := save(cfg, path); err != nil {
		return NewCommandError("config", "save", path, err)
	}
	return nil
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case []string:
		return strings.Join(v, ", ")
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}
