/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mikeb26/pdga-ratingest/internal"
)

// DefaultPath is read when no explicit config path is given. It is optional.
const DefaultPath = "configs/pdgaest.toml"

type Source struct {
	BaseURL string `toml:"base_url"`
	// render pages with headless chrome instead of plain http
	Render        bool     `toml:"render"`
	Concurrency   int      `toml:"concurrency"`
	ExcludedTiers []string `toml:"excluded_tiers"`
	Timeout       Duration `toml:"timeout"`
}

type Estimate struct {
	MeanMargin   float64 `toml:"mean_margin"`
	StdDevFactor float64 `toml:"stdev_factor"`
	// "newest" or "oldest"
	Recency string `toml:"recency"`
}

type Cache struct {
	Bucket string   `toml:"bucket"`
	Gzip   bool     `toml:"gzip"`
	MaxAge Duration `toml:"max_age"`
}

type Storage struct {
	Path string `toml:"path"`
}

type Web struct {
	Listen string `toml:"listen"`
}

type Discord struct {
	Token     string `toml:"token"`
	PublicKey string `toml:"public_key"`
	AppID     string `toml:"app_id"`
	CmdID     string `toml:"cmd_id"`
	Listen    string `toml:"listen"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Source   Source
	Estimate Estimate
	Cache    Cache
	Storage  Storage
	Web      Web
	Discord  Discord
	Log      Log
}

// Duration lets durations be written as strings such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built in configuration.
func Default() Config {
	return Config{
		Source: Source{
			BaseURL:     internal.PdgaBaseURL,
			Concurrency: 2,
			// X-tier events run with non-standard rules are not rated
			ExcludedTiers: []string{"XM"},
			Timeout:       Duration{2 * time.Minute},
		},
		Estimate: Estimate{
			MeanMargin:   100,
			StdDevFactor: 2.5,
			Recency:      "newest",
		},
		Cache: Cache{
			MaxAge: Duration{24 * time.Hour},
		},
		Storage: Storage{
			Path: "pdgaest.sqlite",
		},
		Web: Web{
			Listen: ":3000",
		},
		Discord: Discord{
			Listen: ":8080",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads path on top of Default() and then applies environment
// overrides. An empty path reads DefaultPath if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading config %v: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		env string
		dst *string
	}{
		{"PDGAEST_DISCORD_TOKEN", &cfg.Discord.Token},
		{"PDGAEST_DISCORD_PUBKEY", &cfg.Discord.PublicKey},
		{"PDGAEST_DISCORD_APPID", &cfg.Discord.AppID},
		{"PDGAEST_CACHE_BUCKET", &cfg.Cache.Bucket},
		{"PDGAEST_DB", &cfg.Storage.Path},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (cfg Config) Validate() error {
	if cfg.Source.Concurrency < 1 {
		return fmt.Errorf("source.concurrency must be >= 1 (got %v)",
			cfg.Source.Concurrency)
	}
	if cfg.Estimate.Recency != "newest" && cfg.Estimate.Recency != "oldest" {
		return fmt.Errorf("estimate.recency must be newest or oldest (got %q)",
			cfg.Estimate.Recency)
	}
	if cfg.Estimate.StdDevFactor < 0 || cfg.Estimate.MeanMargin < 0 {
		return fmt.Errorf("estimate thresholds must not be negative")
	}
	return nil
}
