// Package config loads buyora settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/PraveshMalvi/buyora/internal/catalog"
)

// Storage backends for the favorite set.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config holds process settings. Zero values are never used directly;
// Load fills defaults from the envDefault tags.
type Config struct {
	// Storage selects where favorites are persisted.
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// Reveal controls pagination.
	Reveal RevealConfig `envPrefix:"REVEAL_"`

	// Display controls price formatting.
	Display DisplayConfig `envPrefix:"DISPLAY_"`
}

type StorageConfig struct {
	Backend string `env:"BACKEND" envDefault:"sqlite" validate:"oneof=sqlite badger memory"`

	// Path is the SQLite file or the Badger directory. Ignored for memory.
	Path string `env:"PATH" envDefault:"buyora.db" validate:"required_unless=Backend memory"`
}

type RevealConfig struct {
	PageSize  int           `env:"PAGE_SIZE" envDefault:"12" validate:"gte=1,lte=1000"`
	LoadDelay time.Duration `env:"LOAD_DELAY" envDefault:"300ms" validate:"gte=0s,lte=1m"`
}

type DisplayConfig struct {
	Locale   string `env:"LOCALE" envDefault:"en-IN" validate:"required"`
	Currency string `env:"CURRENCY" envDefault:"INR" validate:"required,len=3"`
}

const prefix = "BUYORA_"

var validate = validator.New()

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom reads the configuration from environ, a map of variable names
// to values, and validates it.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      prefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the display locale and
// currency can format prices.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.PriceFormatter(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PriceFormatter builds the formatter for the display settings.
func (c Config) PriceFormatter() (*catalog.PriceFormatter, error) {
	return catalog.NewPriceFormatter(c.Display.Locale, c.Display.Currency)
}
