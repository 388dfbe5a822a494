package model

// Artwork is one catalog entry describing a single piece of art.
type Artwork struct {
	ID          int64  // Assigned by the store on insertion
	Title       string // Display name, never empty
	Year        int    // Creation year
	ImageURL    string // Opaque reference to an external image
	Description string
	Popularity  int    // Ranking signal; lower ranks first
	Type        string // Category label, e.g. "Portrait"
}

// NewArtwork is an Artwork that has not been stored yet and so has no ID.
type NewArtwork struct {
	Title       string `yaml:"title"`
	Year        int    `yaml:"year"`
	ImageURL    string `yaml:"image_url"`
	Description string `yaml:"description"`
	Popularity  int    `yaml:"popularity"`
	Type        string `yaml:"type"`
}

// WithID returns the stored form of a.
func (a NewArtwork) WithID(id int64) Artwork {
	return Artwork{
		ID:          id,
		Title:       a.Title,
		Year:        a.Year,
		ImageURL:    a.ImageURL,
		Description: a.Description,
		Popularity:  a.Popularity,
		Type:        a.Type,
	}
}
