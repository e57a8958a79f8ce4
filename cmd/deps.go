package cmd

import (
	"context"
	"fmt"

	"schema-sync/core/config"
	"schema-sync/core/database"
	"schema-sync/core/logger"
	"schema-sync/core/storage"
	"schema-sync/core/tracker"
	"schema-sync/feature/apply"
	"schema-sync/feature/compare"
	"schema-sync/feature/export"
	"schema-sync/feature/validation"

	"go.uber.org/zap"
)

// deps holds everything the commands are built from. store, backups and
// history are nil when the matching backend is not available.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  tracker.Client
	store   *export.Store
	backups *apply.BackupWriter
	history *apply.History
}

// setup loads the configuration and connects the tracker, storage and
// database. Storage and database are optional.
func setup(ctx context.Context) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := tracker.NewClient(cfg.Tracker, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}

	d := &deps{cfg: cfg, logger: logg, client: client}

	if writer, err := openStorage(ctx, cfg.Storage); err != nil {
		logg.Warn("Storage unavailable, backups and saved exports are disabled", zap.Error(err))
	} else {
		d.store = export.NewStore(writer, cfg.Storage.ExportPrefix)
		d.backups = apply.NewBackupWriter(writer, cfg.Storage.BackupPrefix)
	}

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Warn("Optional database connection failed, apply history is disabled", zap.Error(err))
		} else {
			history := apply.NewHistory(db)
			if err := history.Migrate(); err != nil {
				logg.Warn("Apply history migration failed", zap.Error(err))
			} else {
				d.history = history
			}
		}
	}
	return d, nil
}

func openStorage(ctx context.Context, cfg storage.Config) (storage.Writer, error) {
	writer, err := storage.NewWriter(cfg)
	if err != nil {
		return nil, err
	}
	if err := writer.Prepare(ctx); err != nil {
		return nil, err
	}
	return writer, nil
}

func (d *deps) exporter() *export.Service {
	return export.NewService(d.client, d.cfg.Tracker.BaseURL, d.logger)
}

func (d *deps) validator() *validation.Service {
	return validation.NewService(d.client, d.logger)
}

func (d *deps) applier() *apply.Service {
	engine := apply.NewEngine(d.client, d.backups, d.logger)
	return apply.NewService(d.client, engine, d.validator(), d.history, d.logger)
}

func (d *deps) comparer() *compare.Service {
	return compare.NewService(d.exporter(), d.logger)
}
