package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	c.normalizePhotos()
	c.normalizeCatalog()
	c.normalizeStorefront()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AssetRoot) == "" {
		c.Paths.AssetRoot = defaultAssetRoot
	}
	if c.Paths.AssetRoot, err = expandPath(c.Paths.AssetRoot); err != nil {
		return fmt.Errorf("paths.asset_root: %w", err)
	}
	return nil
}

func (c *Config) normalizeDatabase() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "", "sqlite3":
		c.Database.Driver = DriverSQLite
	case "postgresql", "pg":
		c.Database.Driver = DriverPostgres
	}
	c.Database.DSN = strings.TrimSpace(c.Database.DSN)
	if c.Database.DSN == "" {
		if value, ok := os.LookupEnv(databaseURLEnvVariable); ok {
			c.Database.DSN = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = defaultDatabasePath
	}
	var err error
	if c.Database.Path, err = expandPath(c.Database.Path); err != nil {
		return fmt.Errorf("database.path: %w", err)
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = defaultDatabaseMaxConns
	}
	return nil
}

func (c *Config) normalizePhotos() {
	c.Photos.PropertyName = strings.TrimSpace(c.Photos.PropertyName)
	if c.Photos.PropertyName == "" {
		c.Photos.PropertyName = defaultPropertyName
	}
	c.Photos.CoverType = strings.TrimSpace(c.Photos.CoverType)
	if c.Photos.CoverType == "" {
		c.Photos.CoverType = defaultCoverType
	}
	c.Photos.LocalPrefix = strings.TrimSpace(c.Photos.LocalPrefix)
	if c.Photos.LocalPrefix == "" {
		c.Photos.LocalPrefix = defaultLocalPrefix
	}
	if !strings.HasSuffix(c.Photos.LocalPrefix, "/") {
		c.Photos.LocalPrefix += "/"
	}
	c.Photos.Placeholder = strings.TrimSpace(c.Photos.Placeholder)
	if c.Photos.Placeholder == "" {
		c.Photos.Placeholder = defaultPlaceholder
	}
	c.Photos.MarkerPhrases = dedupeNonEmpty(c.Photos.MarkerPhrases)
	if len(c.Photos.MarkerPhrases) == 0 {
		c.Photos.MarkerPhrases = defaultMarkerPhrases()
	}
}

func (c *Config) normalizeCatalog() {
	c.Catalog.ParentCategory = strings.TrimSpace(c.Catalog.ParentCategory)
	if c.Catalog.ParentCategory == "" {
		c.Catalog.ParentCategory = defaultParentCategory
	}
	c.Catalog.SeedCategories = dedupeNonEmpty(c.Catalog.SeedCategories)
}

func (c *Config) normalizeStorefront() {
	c.Storefront.BaseURL = strings.TrimSpace(c.Storefront.BaseURL)
	if value, ok := os.LookupEnv(storefrontBaseURLEnvVariable); ok && strings.TrimSpace(value) != "" {
		c.Storefront.BaseURL = strings.TrimSpace(value)
	}
	if c.Storefront.BaseURL == "" {
		c.Storefront.BaseURL = defaultStorefrontBaseURL
	}
	c.Storefront.BaseURL = strings.TrimRight(c.Storefront.BaseURL, "/")
	c.Storefront.ProductsPath = ensureLeadingSlash(c.Storefront.ProductsPath, defaultStorefrontProducts)
	c.Storefront.CacheClearPath = ensureLeadingSlash(c.Storefront.CacheClearPath, defaultStorefrontCacheClear)
	if c.Storefront.TimeoutSeconds <= 0 {
		c.Storefront.TimeoutSeconds = defaultStorefrontTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func ensureLeadingSlash(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	return value
}

func dedupeNonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
