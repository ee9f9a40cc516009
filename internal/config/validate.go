package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validatePhotos(); err != nil {
		return err
	}
	if err := c.validateStorefront(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database.path must be set when database.driver is sqlite")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when database.driver is postgres (or set %s)", databaseURLEnvVariable)
		}
	default:
		return fmt.Errorf("database.driver: unsupported value %q (use sqlite or postgres)", c.Database.Driver)
	}
	return nil
}

func (c *Config) validatePhotos() error {
	if !strings.HasPrefix(c.Photos.LocalPrefix, "/") {
		return errors.New("photos.local_prefix must start with /")
	}
	if strings.HasPrefix(c.Photos.Placeholder, c.Photos.LocalPrefix) {
		return fmt.Errorf("photos.placeholder %q must not live under photos.local_prefix %q", c.Photos.Placeholder, c.Photos.LocalPrefix)
	}
	for _, marker := range c.Photos.MarkerPhrases {
		if strings.Contains(c.Photos.Placeholder, marker) {
			return fmt.Errorf("photos.placeholder contains marker phrase %q", marker)
		}
	}
	return nil
}

func (c *Config) validateStorefront() error {
	parsed, err := url.Parse(c.Storefront.BaseURL)
	if err != nil {
		return fmt.Errorf("storefront.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("storefront.base_url must be an http(s) URL, got %q", c.Storefront.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("storefront.base_url is missing a host: %q", c.Storefront.BaseURL)
	}
	return nil
}
