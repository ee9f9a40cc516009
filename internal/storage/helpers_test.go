package storage_test

import (
	"doorops/internal/assets"
	"doorops/internal/config"
)

func assetsChecker(cfg *config.Config) *assets.Checker {
	return assets.NewChecker(cfg.Paths.AssetRoot, cfg.Photos.LocalPrefix, cfg.Photos.Placeholder)
}
