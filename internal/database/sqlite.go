package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gallery-go/internal/database/migrations"
	"gallery-go/internal/database/sqlc"
	"gallery-go/internal/gallery"
	"gallery-go/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// seededKey is the gallery_meta row claimed by the first successful seed.
const seededKey = "seeded"

// SQLiteStore implements gallery.Store on top of SQLite.
type SQLiteStore struct {
	db          *sql.DB
	queries     *sqlc.Queries
	path        string
	broadcaster *gallery.Broadcaster
	logger      gallery.Logger
}

// NewSQLiteStore opens the database at path. path can be a file path or
// ":memory:" for an in-memory database. The schema is not migrated; call
// Migrate before use.
func NewSQLiteStore(path string, logger gallery.Logger) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	s := NewSQLiteStoreFromDB(db, logger)
	s.path = path
	return s, nil
}

// NewSQLiteStoreFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB, logger gallery.Logger) *SQLiteStore {
	if logger == nil {
		logger = gallery.NewNopLogger()
	}
	return &SQLiteStore{
		db:          db,
		queries:     sqlc.New(db),
		broadcaster: gallery.NewBroadcaster(),
		logger:      logger,
	}
}

// OpenConnection opens and configures a SQLite database connection.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	// Immediate transactions take the write lock up front, which makes the
	// seed check-then-insert atomic across processes sharing the file.
	dsn := path + "?_txlock=immediate&_busy_timeout=5000"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, unavailable("opening database", err)
	}

	// One connection: every ":memory:" connection is its own database, and
	// SQLite has a single writer anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, unavailable("enabling foreign keys", err)
	}

	return db, nil
}

// unavailable marks err as a storage failure.
func unavailable(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", gallery.ErrStorageUnavailable, action, err)
}

func (s *SQLiteStore) Count() (int, error) {
	n, err := s.queries.CountArtworks(context.Background())
	if err != nil {
		return 0, unavailable("counting artworks", err)
	}
	return int(n), nil
}

// ListArtworks returns every stored artwork in insertion order.
func (s *SQLiteStore) ListArtworks() ([]model.Artwork, error) {
	rows, err := s.queries.ListArtworks(context.Background())
	if err != nil {
		return nil, unavailable("listing artworks", err)
	}

	result := make([]model.Artwork, len(rows))
	for i, row := range rows {
		result[i] = toModel(row)
	}
	return result, nil
}

func (s *SQLiteStore) BulkInsert(records []model.NewArtwork) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("starting transaction", err)
	}
	defer tx.Rollback()

	ids, err := insertAll(ctx, s.queries.WithTx(tx), records)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable("committing transaction", err)
	}

	s.logger.Debug("artworks inserted", "count", len(ids))
	return ids, s.publish()
}

// SeedIfEmpty claims the seeded flag and inserts records if the claim
// succeeds and the table is empty. All of it happens in one transaction.
// A store that already holds artworks is marked seeded without inserting.
func (s *SQLiteStore) SeedIfEmpty(records []model.NewArtwork) (bool, error) {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, unavailable("starting transaction", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	claimed, err := qtx.ClaimMetaKey(ctx, sqlc.ClaimMetaKeyParams{
		Key:   seededKey,
		Value: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, unavailable("claiming seed flag", err)
	}
	if claimed == 0 {
		return false, nil
	}

	count, err := qtx.CountArtworks(ctx)
	if err != nil {
		return false, unavailable("counting artworks", err)
	}

	inserted := false
	if count == 0 {
		if _, err := insertAll(ctx, qtx, records); err != nil {
			return false, err
		}
		inserted = true
	}

	if err := tx.Commit(); err != nil {
		return false, unavailable("committing transaction", err)
	}

	if !inserted {
		return false, nil
	}
	return true, s.publish()
}

// Seeded reports whether the seed flag has been claimed.
func (s *SQLiteStore) Seeded() (bool, error) {
	_, err := s.queries.GetMetaValue(context.Background(), seededKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, unavailable("reading seed flag", err)
	}
	return true, nil
}

func (s *SQLiteStore) Subscribe(fn gallery.Listener) (*gallery.Subscription, error) {
	return s.broadcaster.Subscribe(s.ListArtworks, fn)
}

// publish pushes the committed collection to subscribers.
func (s *SQLiteStore) publish() error {
	if err := s.broadcaster.Publish(s.ListArtworks); err != nil {
		s.logger.Error("notifying subscribers", "error", err)
		return fmt.Errorf("notifying subscribers: %w", err)
	}
	return nil
}

func insertAll(ctx context.Context, q *sqlc.Queries, records []model.NewArtwork) ([]int64, error) {
	ids := make([]int64, len(records))
	for i, r := range records {
		id, err := q.InsertArtwork(ctx, sqlc.InsertArtworkParams{
			Title:       r.Title,
			Year:        int64(r.Year),
			ImageUrl:    r.ImageURL,
			Description: r.Description,
			Popularity:  int64(r.Popularity),
			Type:        r.Type,
		})
		if err != nil {
			return nil, unavailable(fmt.Sprintf("inserting artwork %q", r.Title), err)
		}
		ids[i] = id
	}
	return ids, nil
}

func toModel(row sqlc.Artwork) model.Artwork {
	return model.Artwork{
		ID:          row.ID,
		Title:       row.Title,
		Year:        int(row.Year),
		ImageURL:    row.ImageUrl,
		Description: row.Description,
		Popularity:  int(row.Popularity),
		Type:        row.Type,
	}
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteStore) Path() string {
	return s.path
}

// Migrate brings the schema up to the latest version.
func (s *SQLiteStore) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// MigrationStatus reports the schema version against the embedded migrations.
func (s *SQLiteStore) MigrationStatus() (migrations.Status, error) {
	return migrations.GetStatus(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteStore) BackupTo(destPath string) error {
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time checks that SQLiteStore satisfies the gallery interfaces.
var (
	_ gallery.Store  = (*SQLiteStore)(nil)
	_ gallery.Seeder = (*SQLiteStore)(nil)
)
