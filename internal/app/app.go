package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"gallery-go/internal/config"
	"gallery-go/internal/database"
	"gallery-go/internal/database/migrations"
	"gallery-go/internal/gallery"
	"gallery-go/internal/model"
	"gallery-go/internal/seed"
)

// GalleryApp is the application layer between the CLI and the gallery core.
// It builds the store from config, migrates and seeds it, and exposes the
// operations the commands need. The caller must call Close when done.
type GalleryApp struct {
	cfg         *config.Config
	store       *database.SQLiteStore
	logger      gallery.Logger
	sortBy      gallery.SortKey
	searchDelay time.Duration
	logFile     *os.File
}

// NewGalleryApp creates a fully wired GalleryApp. A store observed empty is
// seeded with the configured samples; bad seed data is fatal.
func NewGalleryApp(cfg *config.Config, verbose bool) (*GalleryApp, error) {
	sortBy := gallery.SortByPopularity
	if cfg.Gallery.DefaultSort != "" {
		k, err := gallery.ParseSortKey(cfg.Gallery.DefaultSort)
		if err != nil {
			return nil, fmt.Errorf("default_sort: %w", err)
		}
		sortBy = k
	}

	delay, err := cfg.Gallery.SearchDelayDuration()
	if err != nil {
		return nil, err
	}

	samples, err := loadSamples(cfg.Gallery.SeedFile)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	sl, logFile, err := newLogger(cfg.LogDir, uuid.New().String()[:8], level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: sl}

	store, err := database.NewStoreFromConfig(cfg.Database, cfg.InstanceID, logger)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating store: %w", err)
	}

	a := &GalleryApp{
		cfg:         cfg,
		store:       store,
		logger:      logger,
		sortBy:      sortBy,
		searchDelay: delay,
		logFile:     logFile,
	}

	if err := a.prepareStore(samples); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func loadSamples(seedFile string) ([]model.NewArtwork, error) {
	if seedFile == "" {
		return seed.Samples(), nil
	}
	samples, err := seed.LoadFile(seedFile)
	if err != nil {
		return nil, fmt.Errorf("loading seed data: %w", err)
	}
	return samples, nil
}

func (a *GalleryApp) prepareStore(samples []model.NewArtwork) error {
	if err := a.store.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	if err := a.store.CheckMigrations(); err != nil {
		return fmt.Errorf("database schema out of date: %w", err)
	}
	if _, err := gallery.EnsureSeeded(a.store, samples, a.logger); err != nil {
		return err
	}
	return nil
}

// DefaultSort returns the configured sort key.
func (a *GalleryApp) DefaultSort() gallery.SortKey {
	return a.sortBy
}

// Count returns the number of stored artworks.
func (a *GalleryApp) Count() (int, error) {
	return a.store.Count()
}

// List runs the query pipeline once over the current collection.
func (a *GalleryApp) List(searchTerm string, sortBy gallery.SortKey) ([]model.Artwork, error) {
	artworks, err := a.store.ListArtworks()
	if err != nil {
		return nil, err
	}
	return gallery.Query(artworks, searchTerm, sortBy), nil
}

// Import validates the YAML file at path and inserts its artworks in one batch.
// Returns the assigned IDs.
func (a *GalleryApp) Import(path string) ([]int64, error) {
	records, err := seed.LoadFile(path)
	if err != nil {
		return nil, err
	}

	ids, err := a.store.BulkInsert(records)
	if err != nil {
		return nil, fmt.Errorf("importing artworks: %w", err)
	}
	a.logger.Info("artworks imported", "path", path, "count", len(ids))
	return ids, nil
}

// NewBrowser returns a Browser over the app's store using the configured
// sort key and search delay. The caller opens and closes it.
func (a *GalleryApp) NewBrowser(render gallery.RenderFunc) *gallery.Browser {
	return gallery.NewBrowser(a.store, render, gallery.BrowserOptions{
		SortBy:      a.sortBy,
		SearchDelay: a.searchDelay,
		Logger:      a.logger,
	})
}

// MigrationStatus reports the schema version of the store.
func (a *GalleryApp) MigrationStatus() (migrations.Status, error) {
	return a.store.MigrationStatus()
}

// Backup writes a copy of the database to destPath.
func (a *GalleryApp) Backup(destPath string) error {
	if err := a.store.BackupTo(destPath); err != nil {
		return err
	}
	a.logger.Info("database backed up", "path", destPath)
	return nil
}

// Close closes the store and the log file.
func (a *GalleryApp) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
