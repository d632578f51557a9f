// Package config loads FleetAdvisor configuration: built-in defaults, an
// optional YAML file, and environment variable bindings for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/HerbHall/fleetadvisor/internal/compliance"
)

// EnvConfigPath names the environment variable consulted for a config
// file path when none is passed on the command line.
const EnvConfigPath = "FLEETADVISOR_CONFIG"

// Config wraps a viper instance with nil-safe accessors.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil viper yields a Config that returns zero values.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

// Load builds the run configuration. Resolution order:
//  1. built-in defaults
//  2. YAML file at path, or at $FLEETADVISOR_CONFIG when path is empty
//  3. credential environment variables (JAMF_*, GEMINI_API_KEY)
//
// No file at all is fine; a path that was given but cannot be read is an
// error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	envBindings := map[string]string{
		"jamf.base_url":      "JAMF_BASE_URL",
		"jamf.client_id":     "JAMF_CLIENT_ID",
		"jamf.client_secret": "JAMF_CLIENT_SECRET",
		"gemini.api_key":     "GEMINI_API_KEY",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	return New(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("compliance.min_os_version", "14.0")
	v.SetDefault("compliance.require_filevault", true)
	v.SetDefault("compliance.require_firewall", true)
	v.SetDefault("compliance.max_noncompliant_percentage", 10.0)

	v.SetDefault("fetch.max_devices", 100)
	v.SetDefault("fetch.page_size", 50)

	v.SetDefault("jamf.timeout", "60s")
	v.SetDefault("jamf.requests_per_second", 8.0)

	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("slack.title", "Weekly Endpoint Posture Summary")
	v.SetDefault("slack.channel", "#client-platform")
}

// Policy assembles the compliance policy from configuration.
func (c *Config) Policy() compliance.Policy {
	return compliance.Policy{
		MinOSVersion:              c.GetString("compliance.min_os_version"),
		RequireFileVault:          c.GetBool("compliance.require_filevault"),
		RequireFirewall:           c.GetBool("compliance.require_firewall"),
		MaxNoncompliantPercentage: c.GetFloat64("compliance.max_noncompliant_percentage"),
	}
}

// GetString returns the string value for key, or "" when unset.
func (c *Config) GetString(key string) string {
	if c.v == nil {
		return ""
	}
	return c.v.GetString(key)
}

// GetInt returns the int value for key, or 0 when unset.
func (c *Config) GetInt(key string) int {
	if c.v == nil {
		return 0
	}
	return c.v.GetInt(key)
}

// GetBool returns the bool value for key, or false when unset.
func (c *Config) GetBool(key string) bool {
	if c.v == nil {
		return false
	}
	return c.v.GetBool(key)
}

// GetFloat64 returns the float value for key, or 0 when unset.
func (c *Config) GetFloat64(key string) float64 {
	if c.v == nil {
		return 0
	}
	return c.v.GetFloat64(key)
}

// GetDuration returns the duration value for key, or 0 when unset.
func (c *Config) GetDuration(key string) time.Duration {
	if c.v == nil {
		return 0
	}
	return c.v.GetDuration(key)
}

// IsSet reports whether key has a value from any source.
func (c *Config) IsSet(key string) bool {
	if c.v == nil {
		return false
	}
	return c.v.IsSet(key)
}

// Sub returns the subtree rooted at key. Missing subtrees yield an empty
// Config rather than nil so callers can chain accessors safely.
func (c *Config) Sub(key string) *Config {
	if c.v == nil {
		return New(nil)
	}
	sub := c.v.Sub(key)
	if sub == nil {
		return New(viper.New())
	}
	return New(sub)
}

// Unmarshal decodes the whole configuration into target.
func (c *Config) Unmarshal(target any) error {
	if c.v == nil {
		return nil
	}
	return c.v.Unmarshal(target)
}
