package provider

// Followers is the follower summary attached to users and artists.
type Followers struct {
	Total int `json:"total"`
}

// Image is a cover or profile image.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// User is the current user's profile.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Country     string    `json:"country,omitempty"`
	Product     string    `json:"product,omitempty"`
	Followers   Followers `json:"followers"`
}

// Artist is an artist object as returned by search and artist lookup.
type Artist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Genres     []string  `json:"genres"`
	Popularity int       `json:"popularity"`
	Followers  Followers `json:"followers"`
	Images     []Image   `json:"images"`
	URI        string    `json:"uri"`
}

// Album is the album a track belongs to.
type Album struct {
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// Track is a track as returned by the artist top tracks endpoint.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	DurationMs int    `json:"duration_ms"`
	Album      Album  `json:"album"`
}

// ArtistDetails combines an artist with its top tracks.
type ArtistDetails struct {
	Artist    Artist
	TopTracks []Track
}

type searchResponse struct {
	Artists struct {
		Items []Artist `json:"items"`
		Total int      `json:"total"`
	} `json:"artists"`
}

type topTracksResponse struct {
	Tracks []Track `json:"tracks"`
}

type errorResponse struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}
