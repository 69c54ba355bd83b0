package cache

import (
	"fmt"

	"klinechart/config"
	"klinechart/pkg/storage"
	"klinechart/pkg/storage/file"
	"klinechart/pkg/storage/postgres"
	"klinechart/pkg/storage/sqlite"
)

// OpenStore opens the storage backend selected by cache.driver.
func OpenStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Cache.Driver {
	case "file":
		return file.NewStore(cfg.Cache.Path)
	case "sqlite":
		return sqlite.Open(cfg.Cache.Path)
	case "postgres":
		return postgres.InitializeAndMigrate(cfg.Postgres, cfg.Log.Environment, true)
	}
	return nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
}
