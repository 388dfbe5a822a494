// Package seed holds the sample artwork collection and the YAML loader used
// for it and for imports.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gallery-go/internal/model"
)

// ErrInvalidSeed is wrapped by every validation failure from Load.
var ErrInvalidSeed = errors.New("invalid seed data")

//go:embed artworks.yaml
var sampleYAML []byte

// Samples returns the embedded sample collection. It panics if the embedded
// file is malformed, which can only be a build-time mistake.
func Samples() []model.NewArtwork {
	records, err := Load(bytes.NewReader(sampleYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded sample artworks: %v", err))
	}
	return records
}

// Load decodes a YAML list of artworks and validates it.
func Load(r io.Reader) ([]model.NewArtwork, error) {
	var records []model.NewArtwork
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no artworks", ErrInvalidSeed)
		}
		return nil, fmt.Errorf("%w: decoding yaml: %v", ErrInvalidSeed, err)
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadFile reads and validates a YAML artwork file.
func LoadFile(path string) ([]model.NewArtwork, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// Validate checks that the list is non-empty, every record has a title, and
// no title appears twice.
func Validate(records []model.NewArtwork) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no artworks", ErrInvalidSeed)
	}

	seen := make(map[string]int, len(records))
	for i, r := range records {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			return fmt.Errorf("%w: artwork %d has no title", ErrInvalidSeed, i)
		}
		if prev, ok := seen[title]; ok {
			return fmt.Errorf("%w: artwork %d duplicates the title %q of artwork %d", ErrInvalidSeed, i, title, prev)
		}
		seen[title] = i
	}
	return nil
}
