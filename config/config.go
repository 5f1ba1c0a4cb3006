// Package config loads the tool configuration from
// ~/.config/itsa/config.json.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	prodBaseURL = "https://api.service.hmrc.gov.uk"
	testBaseURL = "https://test-api.service.hmrc.gov.uk"
)

// Business describes one of the user's registered businesses.
type Business struct {
	ID   string `mapstructure:"bid"`
	Type string `mapstructure:"type"`
	Name string `mapstructure:"name"`

	// GnuCash is the path to the ledger the business accounts live
	// in. Loaded for completeness; nothing here queries it.
	GnuCash string `mapstructure:"gnc_sqlite"`
}

// Config is the parsed configuration. Immutable after Load.
type Config struct {
	ProductionAPI bool
	NINO          string
	AccessToken   string

	Businesses  []Business
	BusinessIdx int
}

// Dir returns the configuration directory, honouring ITSA_CONFIG_DIR.
func Dir() (string, error) {
	if d := os.Getenv("ITSA_CONFIG_DIR"); d != "" {
		return d, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "itsa"), nil
}

// Load reads and validates config.json from Dir().
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: unable to open %s: %w",
			filepath.Join(dir, "config.json"), err)
	}

	c := &Config{
		ProductionAPI: v.GetBool("production_api"),
		NINO:          v.GetString("nino"),
		AccessToken:   v.GetString("access_token"),
		BusinessIdx:   v.GetInt("business_idx"),
	}
	if err := v.UnmarshalKey("businesses", &c.Businesses); err != nil {
		return nil, fmt.Errorf("config: parsing businesses: %w", err)
	}

	if len(c.Businesses) == 0 {
		return nil, fmt.Errorf("config: no businesses configured")
	}
	if c.BusinessIdx < 0 || c.BusinessIdx >= len(c.Businesses) {
		return nil, fmt.Errorf("config: business_idx %d out of range",
			c.BusinessIdx)
	}
	if b := c.Business(); b.ID == "" {
		return nil, fmt.Errorf("config: business %d has no bid", c.BusinessIdx)
	}

	return c, nil
}

// Business returns the currently selected business.
func (c *Config) Business() Business {
	return c.Businesses[c.BusinessIdx]
}

// BaseURL returns the API endpoint matching the production_api flag.
func (c *Config) BaseURL() string {
	if c.ProductionAPI {
		return prodBaseURL
	}
	return testBaseURL
}
