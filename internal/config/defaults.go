package config

const (
	// DriverSQLite selects the embedded SQLite store.
	DriverSQLite = "sqlite"
	// DriverPostgres selects the PostgreSQL store.
	DriverPostgres = "postgres"
)

const (
	defaultLogDir                = "~/.local/share/doorops/logs"
	defaultAssetRoot             = "public/uploads"
	defaultDatabaseDriver        = DriverSQLite
	defaultDatabasePath          = "~/.local/share/doorops/storefront.db"
	defaultDatabaseMaxConns      = 4
	defaultPropertyName          = "Domeo_Модель_Цвет"
	defaultCoverType             = "cover"
	defaultLocalPrefix           = "/uploads/"
	defaultPlaceholder           = "/images/placeholder.jpg"
	defaultParentCategory        = "Каталог"
	defaultStorefrontBaseURL     = "http://localhost:3000"
	defaultStorefrontProducts    = "/api/catalog/doors/complete-data"
	defaultStorefrontCacheClear  = "/api/catalog/doors/complete-data/clear-cache"
	defaultStorefrontTimeout     = 30
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogMaxSizeMB          = 20
	defaultLogMaxBackups         = 5
	defaultLogRetentionDays      = 60
	storefrontBaseURLEnvVariable = "DOOROPS_API_BASE_URL"
	databaseURLEnvVariable       = "DATABASE_URL"
)

func defaultMarkerPhrases() []string {
	return []string{"Не использовать", "не использовать модель"}
}

func defaultSeedCategories() []string {
	return []string{
		"Межкомнатные двери",
		"Входные двери",
		"Фурнитура",
		"Погонаж",
		"Ручки",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			AssetRoot: defaultAssetRoot,
		},
		Database: Database{
			Driver:   defaultDatabaseDriver,
			Path:     defaultDatabasePath,
			MaxConns: defaultDatabaseMaxConns,
		},
		Photos: Photos{
			PropertyName:  defaultPropertyName,
			CoverType:     defaultCoverType,
			LocalPrefix:   defaultLocalPrefix,
			Placeholder:   defaultPlaceholder,
			MarkerPhrases: defaultMarkerPhrases(),
		},
		Catalog: Catalog{
			ParentCategory: defaultParentCategory,
			SeedCategories: defaultSeedCategories(),
		},
		Storefront: Storefront{
			BaseURL:        defaultStorefrontBaseURL,
			ProductsPath:   defaultStorefrontProducts,
			CacheClearPath: defaultStorefrontCacheClear,
			TimeoutSeconds: defaultStorefrontTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
