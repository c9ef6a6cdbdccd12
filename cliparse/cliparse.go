// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/commander-pods/placement"
	"github.com/danielhkuo/commander-pods/scoring"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SettingsPath string
	Settings     Settings
}

// Settings are the per-deployment event rules.
type Settings struct {
	DefaultNumPods  int              `yaml:"default_num_pods"`
	MaxRounds       int              `yaml:"max_rounds"`
	RoundRanks      int              `yaml:"round_ranks"`
	MinParticipants int              `yaml:"min_participants"`
	Points          scoring.Settings `yaml:"points"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultNumPods:  2,
		MaxRounds:       7,
		RoundRanks:      4,
		MinParticipants: 3,
		Points:          scoring.DefaultSettings(),
	}
}

func (s Settings) Validate() error {
	switch {
	case s.DefaultNumPods < 1 || s.DefaultNumPods > 32:
		return fmt.Errorf("default_num_pods must be between 1 and 32, got %d", s.DefaultNumPods)
	case s.MaxRounds < 1 || s.MaxRounds > 30:
		return fmt.Errorf("max_rounds must be between 1 and 30, got %d", s.MaxRounds)
	case s.RoundRanks < 1 || s.RoundRanks > placement.MaxRanks:
		return fmt.Errorf("round_ranks must be between 1 and %d, got %d", placement.MaxRanks, s.RoundRanks)
	case s.MinParticipants < 2 || s.MinParticipants > 64:
		return fmt.Errorf("min_participants must be between 2 and 64, got %d", s.MinParticipants)
	}
	if err := s.Points.Validate(); err != nil {
		return fmt.Errorf("points: %w", err)
	}
	return nil
}

// LoadSettings reads a YAML settings file over the defaults. Keys missing
// from the file keep their default value; a points scheme given in the file
// replaces the default scheme as a whole.
func LoadSettings(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := DefaultSettings()
	s.Points = scoring.Settings{}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	defaults := scoring.DefaultSettings()
	if s.Points.PlayPhase == nil {
		s.Points.PlayPhase = defaults.PlayPhase
	}
	if s.Points.BestDeckVoting == nil {
		s.Points.BestDeckVoting = defaults.BestDeckVoting
	}
	if s.Points.BestDeckOverall == nil {
		s.Points.BestDeckOverall = defaults.BestDeckOverall
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// LoadEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are not an error.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("commander-pods", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.SettingsPath, "settings", "", "Event settings YAML file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.SettingsPath == "" {
		cfg.SettingsPath = os.Getenv("EVENT_SETTINGS")
	}
	if cfg.SettingsPath == "" {
		cfg.Settings = DefaultSettings()
		return cfg, nil
	}
	settings, err := LoadSettings(cfg.SettingsPath)
	if err != nil {
		return Config{}, err
	}
	cfg.Settings = settings

	return cfg, nil
}

// Driver maps the database type to its database/sql driver name.
func (c Config) Driver() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
