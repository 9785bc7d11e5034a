// Package config loads tvpick settings from a TOML file and TVPICK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/JackWReid/tvpick/internal/ui"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Inverted bool     `toml:"inverted"`
	Height   int      `toml:"height"` // Picker rows, 0 for the whole terminal
	Prompt   string   `toml:"prompt"`
	Threads  int      `toml:"threads"`
	LogFile  string   `toml:"log_file"`
	LogLevel string   `toml:"log_level"`
	Theme    ui.Theme `toml:"theme"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Prompt:   "> ",
		Threads:  2,
		LogLevel: "info",
		Theme:    ui.DefaultTheme,
	}
}

// Var returns the environment variable key with surrounding whitespace and
// quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Path returns the config file location and whether it was chosen
// explicitly through TVPICK_CONFIG.
func Path() (string, bool) {
	if p := Var("TVPICK_CONFIG"); p != "" {
		return p, true
	}
	dir := Var("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tvpick", "config.toml"), false
}

// Load reads the config file at path, or at Path() when path is empty, then
// applies environment overrides. Only a missing default file is tolerated.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path, explicit = Path()
	}

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case err != nil:
			return Config{}, fmt.Errorf("loading config %s: %w", path, err)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Config{}, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if s := Var("TVPICK_INVERTED"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%w: TVPICK_INVERTED=%q", ErrInvalid, s)
		}
		c.Inverted = b
	}
	for key, dst := range map[string]*int{"TVPICK_HEIGHT": &c.Height, "TVPICK_THREADS": &c.Threads} {
		if s := Var(key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalid, key, s)
			}
			*dst = n
		}
	}
	if s, ok := os.LookupEnv("TVPICK_PROMPT"); ok {
		c.Prompt = s
	}
	if s := Var("TVPICK_LOG_FILE"); s != "" {
		c.LogFile = s
	}
	if s := Var("TVPICK_LOG_LEVEL"); s != "" {
		c.LogLevel = s
	}
	return nil
}

// Validate checks ranges and the log level.
func (c Config) Validate() error {
	if c.Height < 0 {
		return fmt.Errorf("%w: height %d is negative", ErrInvalid, c.Height)
	}
	if c.Threads < 0 {
		return fmt.Errorf("%w: threads %d is negative", ErrInvalid, c.Threads)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
