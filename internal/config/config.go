// Package config loads runtime settings from SKILLHAWK_* environment
// variables. Flags take precedence; the environment fills the gaps.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the resolved runtime configuration.
type Config struct {
	Guard    GuardConfig
	Registry RegistryConfig
	Scan     ScanConfig
	Score    ScoreConfig
}

// GuardConfig configures the optional remote guard.
type GuardConfig struct {
	Endpoint string `envconfig:"ENDPOINT"`
	APIKey   string `envconfig:"API_KEY"`
}

// RegistryConfig configures the duplicate-check registry client.
type RegistryConfig struct {
	URL       string `envconfig:"URL"`
	CachePath string `envconfig:"CACHE"`
	MaxSkills int    `envconfig:"MAX_SKILLS" default:"5000"`
}

// ScanConfig configures the security scanner.
type ScanConfig struct {
	DetectorOrder  []string      `envconfig:"DETECTOR_ORDER"`
	DisableSecrets bool          `envconfig:"DISABLE_SECRETS"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"20s"`
	BaselinePath   string        `envconfig:"BASELINE"`
}

// ScoreConfig configures the scoring gate.
type ScoreConfig struct {
	MinimumScore      int `envconfig:"MIN" default:"70"`
	WeightCompliance  int `envconfig:"WEIGHT_COMPLIANCE" default:"30"`
	WeightSecurity    int `envconfig:"WEIGHT_SECURITY" default:"25"`
	WeightContent     int `envconfig:"WEIGHT_CONTENT" default:"20"`
	WeightTesting     int `envconfig:"WEIGHT_TESTING" default:"15"`
	WeightOriginality int `envconfig:"WEIGHT_ORIGINALITY" default:"10"`
}

// Load reads SKILLHAWK_* environment variables, one prefix per group
// (SKILLHAWK_GUARD_ENDPOINT, SKILLHAWK_SCAN_TIMEOUT, ...), over built-in
// defaults.
func Load() (Config, error) {
	var cfg Config
	for prefix, target := range map[string]any{
		"SKILLHAWK_GUARD":    &cfg.Guard,
		"SKILLHAWK_REGISTRY": &cfg.Registry,
		"SKILLHAWK_SCAN":     &cfg.Scan,
		"SKILLHAWK_SCORE":    &cfg.Score,
	} {
		if err := envconfig.Process(prefix, target); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", prefix, err)
		}
	}
	if cfg.Registry.CachePath == "" {
		cfg.Registry.CachePath = defaultCachePath()
	}
	return cfg, nil
}

func defaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "skillhawk", "registry.json")
}
