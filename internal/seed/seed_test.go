package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSamples(t *testing.T) {
	samples := Samples()

	if len(samples) != 10 {
		t.Fatalf("len(Samples()) = %d, want 10", len(samples))
	}
	if err := Validate(samples); err != nil {
		t.Errorf("Validate(Samples()) error = %v", err)
	}

	first := samples[0]
	if first.Title != "Self Portrait" || first.Year != 1920 || first.Popularity != 0 || first.Type != "Portrait" {
		t.Errorf("Samples()[0] = %+v, want Self Portrait (1920, rank 0)", first)
	}
	if !strings.HasPrefix(first.ImageURL, "https://") {
		t.Errorf("Samples()[0].ImageURL = %q, want an https URL", first.ImageURL)
	}

	ranks := make(map[int]bool)
	for _, s := range samples {
		ranks[s.Popularity] = true
	}
	if len(ranks) != len(samples) {
		t.Errorf("popularity ranks are not distinct: %v", ranks)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    int
		wantErr bool
	}{
		{
			name: "valid list",
			yaml: "- title: A\n  year: 1900\n  type: Portrait\n- title: B\n  year: 1901\n",
			want: 2,
		},
		{name: "empty document", yaml: "", wantErr: true},
		{name: "empty list", yaml: "[]\n", wantErr: true},
		{name: "missing title", yaml: "- year: 1900\n", wantErr: true},
		{name: "blank title", yaml: "- title: '  '\n", wantErr: true},
		{name: "duplicate title", yaml: "- title: A\n- title: A\n", wantErr: true},
		{name: "unknown field", yaml: "- title: A\n  views: 12\n", wantErr: true},
		{name: "not a list", yaml: "title: A\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(strings.NewReader(tt.yaml))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSeed) {
					t.Fatalf("Load() error = %v, want ErrInvalidSeed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len(Load()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "artworks.yaml")
		body := "- title: Harbour\n  year: 1911\n  image_url: https://example.org/h.jpg\n  description: Boats.\n  popularity: 4\n  type: Landscape\n"
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}

		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if len(got) != 1 || got[0].ImageURL != "https://example.org/h.jpg" || got[0].Popularity != 4 {
			t.Errorf("LoadFile() = %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("LoadFile() expected error for missing file")
		}
	})
}
