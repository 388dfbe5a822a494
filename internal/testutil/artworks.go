package testutil

import "gallery-go/internal/model"

// Artworks returns a small fixed collection with distinct IDs.
// Popularity and year ties are deliberate, for stable-sort checks.
func Artworks() []model.Artwork {
	return []model.Artwork{
		{ID: 1, Title: "Self Portrait", Year: 1920, Description: "A self-portrait by Huib Luns.", Popularity: 0, Type: "Portrait"},
		{ID: 2, Title: "Landscape with Trees", Year: 1910, Description: "A serene landscape.", Popularity: 3, Type: "Landscape"},
		{ID: 3, Title: "Still Life with Flowers", Year: 1918, Description: "A bouquet of flowers.", Popularity: 3, Type: "Still Life"},
		{ID: 4, Title: "Reading Lady", Year: 1910, Description: "A serene portrait of a lady reading.", Popularity: 1, Type: "Portrait"},
		{ID: 5, Title: "Dunes", Year: 1918, Description: "Sand and sky.", Popularity: 0, Type: "Landscape"},
	}
}

// NewArtworks returns one unsaved artwork per title.
func NewArtworks(titles ...string) []model.NewArtwork {
	records := make([]model.NewArtwork, len(titles))
	for i, title := range titles {
		records[i] = model.NewArtwork{Title: title, Year: 1900 + i, Popularity: i, Type: "Portrait"}
	}
	return records
}
