package watchlist

import (
	"fmt"
	"strconv"
	"strings"
)

type MediaType string

const (
	Movie MediaType = "movie"
	TV    MediaType = "tv"
)

func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case Movie:
		return Movie, nil
	case TV:
		return TV, nil
	default:
		return "", fmt.Errorf("unknown media type %q (want movie or tv)", s)
	}
}

// Label is the short form shown next to titles in listings.
func (m MediaType) Label() string {
	if m == TV {
		return "TV"
	}
	return "Movie"
}

// Entry is one bookmarked title. The JSON field names are the persisted layout.
type Entry struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path"`
	VoteAverage float64   `json:"vote_average"`
	ReleaseDate string    `json:"release_date"`
	MediaType   MediaType `json:"media_type"`
}

// Key identifies a title across both media types. An empty MediaType means
// the key matches the id alone.
type Key struct {
	ID        int
	MediaType MediaType
}

func (k Key) String() string {
	if k.MediaType == "" {
		return strconv.Itoa(k.ID)
	}
	return string(k.MediaType) + ":" + strconv.Itoa(k.ID)
}

func (e Entry) Key() Key {
	return Key{ID: e.ID, MediaType: e.MediaType}
}

// Year returns the four-digit year of ReleaseDate, or "" when unknown.
func (e Entry) Year() string {
	if len(e.ReleaseDate) < 4 {
		return ""
	}
	return e.ReleaseDate[:4]
}
