// Package config reads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Placeholders shipped in .env.example. They never reach a real project.
const (
	PlaceholderURL = "YOUR_SUPABASE_URL"
	PlaceholderKey = "YOUR_SUPABASE_ANON_KEY"
)

// Config holds everything the commands need to start.
type Config struct {
	DBPath      string
	Addr        string
	LogPath     string
	Timezone    string
	SupabaseURL string
	SupabaseKey string
}

// Load reads the given env files (".env" when none are named), then the
// process environment. Missing files are ignored; variables already set in
// the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		DBPath:      getEnv("OPMC_DB", "opmc.sqlite3"),
		Addr:        getEnv("OPMC_ADDR", ":8080"),
		LogPath:     getEnv("OPMC_LOG", ""),
		Timezone:    getEnv("OPMC_TIMEZONE", "Local"),
		SupabaseURL: getEnv("SUPABASE_URL", PlaceholderURL),
		SupabaseKey: getEnv("SUPABASE_ANON_KEY", PlaceholderKey),
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UseSupabase reports whether both Supabase settings hold real values.
func (c *Config) UseSupabase() bool {
	return configured(c.SupabaseURL, PlaceholderURL) && configured(c.SupabaseKey, PlaceholderKey)
}

// Location returns the zone used to format timestamps.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func configured(v, placeholder string) bool {
	return v != "" && v != placeholder
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}
