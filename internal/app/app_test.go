package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gallery-go/internal/config"
	"gallery-go/internal/gallery"
	"gallery-go/internal/model"
	"gallery-go/internal/seed"
)

func newTestConfig(t *testing.T, dbType string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig("test-instance", dir)
	cfg.Database.Type = dbType
	return cfg
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artworks.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}
	return path
}

func TestNewGalleryApp_SeedsEmptyStore(t *testing.T) {
	a, err := NewGalleryApp(newTestConfig(t, "memory"), false)
	if err != nil {
		t.Fatalf("NewGalleryApp() error = %v", err)
	}
	defer a.Close()

	n, err := a.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if want := len(seed.Samples()); n != want {
		t.Errorf("Count() = %d, want %d", n, want)
	}
}

func TestNewGalleryApp_DoesNotReseed(t *testing.T) {
	cfg := newTestConfig(t, "sqlite")

	first, err := NewGalleryApp(cfg, false)
	if err != nil {
		t.Fatalf("first NewGalleryApp() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := NewGalleryApp(cfg, false)
	if err != nil {
		t.Fatalf("second NewGalleryApp() error = %v", err)
	}
	defer second.Close()

	n, err := second.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if want := len(seed.Samples()); n != want {
		t.Errorf("Count() after reopening = %d, want %d", n, want)
	}
}

func TestNewGalleryApp_ConfigErrors(t *testing.T) {
	t.Run("unknown default sort", func(t *testing.T) {
		cfg := newTestConfig(t, "memory")
		cfg.Gallery.DefaultSort = "price"
		if _, err := NewGalleryApp(cfg, false); err == nil {
			t.Fatal("NewGalleryApp() expected error for unknown default_sort")
		}
	})

	t.Run("bad search delay", func(t *testing.T) {
		cfg := newTestConfig(t, "memory")
		cfg.Gallery.SearchDelay = "later"
		if _, err := NewGalleryApp(cfg, false); err == nil {
			t.Fatal("NewGalleryApp() expected error for bad search_delay")
		}
	})

	t.Run("malformed seed file is fatal", func(t *testing.T) {
		cfg := newTestConfig(t, "memory")
		cfg.Gallery.SeedFile = writeYAML(t, "- title: A\n  year: 1900\n- title: A\n  year: 1901\n")

		_, err := NewGalleryApp(cfg, false)
		if !errors.Is(err, seed.ErrInvalidSeed) {
			t.Fatalf("NewGalleryApp() error = %v, want ErrInvalidSeed", err)
		}
	})
}

func TestGalleryApp_SeedFileOverride(t *testing.T) {
	cfg := newTestConfig(t, "memory")
	cfg.Gallery.SeedFile = writeYAML(t, "- title: Only One\n  year: 1950\n  popularity: 2\n")

	a, err := NewGalleryApp(cfg, false)
	if err != nil {
		t.Fatalf("NewGalleryApp() error = %v", err)
	}
	defer a.Close()

	got, err := a.List("", gallery.SortByYear)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Only One" {
		t.Errorf("List() = %+v, want the single seeded artwork", got)
	}
}

func TestGalleryApp_List(t *testing.T) {
	cfg := newTestConfig(t, "memory")
	cfg.Gallery.DefaultSort = "year"

	a, err := NewGalleryApp(cfg, false)
	if err != nil {
		t.Fatalf("NewGalleryApp() error = %v", err)
	}
	defer a.Close()

	if a.DefaultSort() != gallery.SortByYear {
		t.Errorf("DefaultSort() = %v, want year", a.DefaultSort())
	}

	got, err := a.List("PORTRAIT OF", a.DefaultSort())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// "Reading Lady" matches on its description.
	wantTitles := []string{"Portrait of My Father", "Reading Lady", "Portrait of J.F. de Vogel", "Portrait of Ir. G. Diehl"}
	if len(got) != len(wantTitles) {
		t.Fatalf("List() returned %d artworks, want %d: %+v", len(got), len(wantTitles), got)
	}
	for i, title := range wantTitles {
		if got[i].Title != title {
			t.Errorf("List()[%d].Title = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestGalleryApp_Import(t *testing.T) {
	a, err := NewGalleryApp(newTestConfig(t, "memory"), false)
	if err != nil {
		t.Fatalf("NewGalleryApp() error = %v", err)
	}
	defer a.Close()

	var renders [][]model.Artwork
	b := a.NewBrowser(func(results []model.Artwork) { renders = append(renders, results) })
	if err := b.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer b.Close()

	path := writeYAML(t, "- title: Harbour at Dusk\n  year: 1912\n  popularity: 11\n- title: Dunes\n  year: 1913\n  popularity: 12\n")
	ids, err := a.Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Import() returned %d ids, want 2", len(ids))
	}

	n, _ := a.Count()
	if want := len(seed.Samples()) + 2; n != want {
		t.Errorf("Count() = %d, want %d", n, want)
	}
	if len(renders) != 2 {
		t.Fatalf("browser rendered %d times, want 2 (open + import)", len(renders))
	}
	if last := renders[1]; len(last) != n {
		t.Errorf("last render has %d artworks, want %d", len(last), n)
	}
}

func TestGalleryApp_Backup(t *testing.T) {
	a, err := NewGalleryApp(newTestConfig(t, "memory"), false)
	if err != nil {
		t.Fatalf("NewGalleryApp() error = %v", err)
	}
	defer a.Close()

	dest := filepath.Join(t.TempDir(), "backup.db")
	if err := a.Backup(dest); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("backup file not created: %v", err)
	}

	st, err := a.MigrationStatus()
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if !st.Current() {
		t.Errorf("MigrationStatus() = %+v, want current", st)
	}
}
