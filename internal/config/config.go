// Package config loads the optional noon settings file.
//
// The file is TOML or YAML, chosen by extension (.toml, .yaml, .yml). Every
// key is optional; missing keys keep their defaults:
//
//	color               = "auto"            # auto | always | never
//	history_file        = "~/.noon_history"
//	history_size        = 1000
//	prompt              = ">>> "
//	continuation_prompt = "... "
//	print_tokens        = false
//	print_ast           = false
//	debug               = false
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/noon-lang/noon/diag"
)

// Format is the syntax of a settings file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// Config holds the user settings.
type Config struct {
	Color              string `toml:"color" yaml:"color"`
	HistoryFile        string `toml:"history_file" yaml:"history_file"`
	HistorySize        int    `toml:"history_size" yaml:"history_size"`
	Prompt             string `toml:"prompt" yaml:"prompt"`
	ContinuationPrompt string `toml:"continuation_prompt" yaml:"continuation_prompt"`
	PrintTokens        bool   `toml:"print_tokens" yaml:"print_tokens"`
	PrintAST           bool   `toml:"print_ast" yaml:"print_ast"`
	Debug              bool   `toml:"debug" yaml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Color:              string(diag.ColorAuto),
		HistoryFile:        defaultHistoryFile(),
		HistorySize:        1000,
		Prompt:             ">>> ",
		ContinuationPrompt: "... ",
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".noon_history"
	}
	return filepath.Join(home, ".noon_history")
}

// ColorMode returns the validated color setting.
func (c Config) ColorMode() (diag.ColorMode, error) {
	return diag.ParseColorMode(c.Color)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := c.ColorMode(); err != nil {
		return err
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	return nil
}

// DetectFormat picks the format from the file extension. Unknown extensions
// are read as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parse toml: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return Config{}, fmt.Errorf("parse toml: unknown key %q", undec[0].String())
		}
	}
	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the settings file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, DetectFormat(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads path when it is non-empty; a missing explicit file is an
// error. Otherwise it tries $XDG_CONFIG_HOME/noon/config.toml and then
// ~/.noon.toml, and falls back to the defaults when neither exists.
func Discover(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	for _, candidate := range searchPaths() {
		cfg, err := Load(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

func searchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "noon", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		if os.Getenv("XDG_CONFIG_HOME") == "" {
			paths = append(paths, filepath.Join(home, ".config", "noon", "config.toml"))
		}
		paths = append(paths, filepath.Join(home, ".noon.toml"))
	}
	return paths
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
