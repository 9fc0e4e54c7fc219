// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - 'veriq config' show/set handlers.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/veriqai/veriq-tui/internal/config"
)

// maskKey hides all but the tail of an API key for display.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// HandleConfig dispatches the config subcommand.
func HandleConfig(args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "set":
		return configSet(args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.Path()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(path)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown config subcommand %q\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "Usage: veriq config [show|set <key> <value>|path]")
		return 1
	}
}

func configShow() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	path, _ := config.Path()
	fmt.Printf("Config file:       %s\n", path)
	fmt.Printf("data_dir:          %s\n", cfg.DataDir)
	fmt.Printf("openai_key:        %s\n", maskKey(cfg.Providers.OpenAIKey))
	fmt.Printf("openai_base_url:   %s\n", cfg.Providers.OpenAIBaseURL)
	fmt.Printf("gemini_key:        %s\n", maskKey(cfg.Providers.GeminiKey))
	fmt.Printf("gemini_base_url:   %s\n", cfg.Providers.GeminiBaseURL)
	fmt.Printf("totp_secret:       %s\n", maskKey(cfg.Admin.TOTPSecret))
	fmt.Printf("ui.theme:          %s\n", cfg.UI.Theme)
	fmt.Printf("ui.show_sidebar:   %t\n", cfg.UI.ShowSidebar)
	return 0
}

func configSet(key, value string) int {
	if key == "" {
		fmt.Fprintln(os.Stderr, "Usage: veriq config set <key> <value>")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	switch strings.ToLower(key) {
	case "data_dir":
		cfg.DataDir = value
	case "openai_key":
		cfg.Providers.OpenAIKey = value
	case "openai_base_url":
		cfg.Providers.OpenAIBaseURL = value
	case "gemini_key":
		cfg.Providers.GeminiKey = value
	case "gemini_base_url":
		cfg.Providers.GeminiBaseURL = value
	case "totp_secret":
		cfg.Admin.TOTPSecret = value
	case "ui.theme", "theme":
		if value != "dark" && value != "light" {
			fmt.Fprintf(os.Stderr, "Error: theme must be dark or light\n")
			return 1
		}
		cfg.UI.Theme = value
	case "ui.show_sidebar", "show_sidebar":
		b, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s must be true or false\n", key)
			return 1
		}
		cfg.UI.ShowSidebar = b
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown config key %q\n", key)
		return 1
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Set %s\n", key)
	return 0
}
