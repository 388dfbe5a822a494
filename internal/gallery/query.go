package gallery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"gallery-go/internal/model"
)

// SortKey selects the ordering applied by Query.
type SortKey int

const (
	// SortByPopularity orders by popularity rank, lowest first.
	SortByPopularity SortKey = iota
	// SortByYear orders by creation year, oldest first.
	SortByYear
)

var sortKeyNames = [...]string{
	SortByPopularity: "popularity",
	SortByYear:       "year",
}

func (k SortKey) String() string {
	if !k.valid() {
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
	return sortKeyNames[k]
}

func (k SortKey) valid() bool {
	return k >= 0 && int(k) < len(sortKeyNames)
}

// ParseSortKey converts "popularity" or "year" (case-insensitive) to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range sortKeyNames {
		if n == name {
			return SortKey(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sort key %q (want popularity or year)", s)
}

func (k SortKey) compare() func(a, b model.Artwork) int {
	switch k {
	case SortByPopularity:
		return func(a, b model.Artwork) int { return cmp.Compare(a.Popularity, b.Popularity) }
	case SortByYear:
		return func(a, b model.Artwork) int { return cmp.Compare(a.Year, b.Year) }
	}
	panic(fmt.Sprintf("gallery: invalid sort key %d", int(k)))
}

// Query returns the artworks whose title or description contains searchTerm,
// ignoring case, ordered by sortBy. Equal keys keep their input order.
// The input slice is never modified and the result is always a new slice.
func Query(artworks []model.Artwork, searchTerm string, sortBy SortKey) []model.Artwork {
	compare := sortBy.compare()
	term := strings.ToLower(searchTerm)

	result := make([]model.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if matches(a, term) {
			result = append(result, a)
		}
	}

	slices.SortStableFunc(result, compare)
	return result
}

// matches expects term to be lower-cased already.
func matches(a model.Artwork, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Description), term)
}
