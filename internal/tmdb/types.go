package tmdb

import (
	"fmt"

	"github.com/user/cinelist/internal/watchlist"
)

// Title is one item in a listing. Movies carry title/release_date, series
// carry name/first_air_date.
type Title struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

func (t Title) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

func (t Title) Date() string {
	if t.ReleaseDate != "" {
		return t.ReleaseDate
	}
	return t.FirstAirDate
}

// Kind maps the listing's media_type onto a watchlist media type. Listings
// from movie-only endpoints omit media_type.
func (t Title) Kind() watchlist.MediaType {
	if t.MediaType == string(watchlist.TV) {
		return watchlist.TV
	}
	return watchlist.Movie
}

func (t Title) Entry() watchlist.Entry {
	return watchlist.Entry{
		ID:          t.ID,
		Title:       t.DisplayTitle(),
		PosterPath:  t.PosterPath,
		VoteAverage: t.VoteAverage,
		ReleaseDate: t.Date(),
		MediaType:   t.Kind(),
	}
}

// TitleFromEntry lets watchlist entries be shown in the same listings.
func TitleFromEntry(e watchlist.Entry) Title {
	t := Title{
		ID:          e.ID,
		PosterPath:  e.PosterPath,
		VoteAverage: e.VoteAverage,
		MediaType:   string(e.MediaType),
	}
	if e.MediaType == watchlist.TV {
		t.Name = e.Title
		t.FirstAirDate = e.ReleaseDate
	} else {
		t.Title = e.Title
		t.ReleaseDate = e.ReleaseDate
	}
	return t
}

type Page struct {
	Page         int     `json:"page"`
	Results      []Title `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type Details struct {
	ID              int     `json:"id"`
	Title           string  `json:"title,omitempty"`
	Name            string  `json:"name,omitempty"`
	Overview        string  `json:"overview"`
	Tagline         string  `json:"tagline"`
	Status          string  `json:"status"`
	PosterPath      string  `json:"poster_path"`
	BackdropPath    string  `json:"backdrop_path"`
	VoteAverage     float64 `json:"vote_average"`
	VoteCount       int     `json:"vote_count"`
	ReleaseDate     string  `json:"release_date,omitempty"`
	FirstAirDate    string  `json:"first_air_date,omitempty"`
	Runtime         int     `json:"runtime,omitempty"`
	EpisodeRunTime  []int   `json:"episode_run_time,omitempty"`
	NumberOfSeasons int     `json:"number_of_seasons,omitempty"`
	Genres          []Genre `json:"genres"`
	Credits         struct {
		Cast []CastMember `json:"cast"`
	} `json:"credits"`

	MediaType watchlist.MediaType `json:"media_type"`

	// Resolved CDN links, empty when TMDB has no image.
	PosterURL   string `json:"poster_url,omitempty"`
	BackdropURL string `json:"backdrop_url,omitempty"`
}

func (d Details) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

func (d Details) Date() string {
	if d.ReleaseDate != "" {
		return d.ReleaseDate
	}
	return d.FirstAirDate
}

// RuntimeMinutes is the movie runtime or the first listed episode runtime.
func (d Details) RuntimeMinutes() int {
	if d.Runtime > 0 {
		return d.Runtime
	}
	if len(d.EpisodeRunTime) > 0 {
		return d.EpisodeRunTime[0]
	}
	return 0
}

// TopCast returns at most n cast members in billing order.
func (d Details) TopCast(n int) []CastMember {
	if len(d.Credits.Cast) <= n {
		return d.Credits.Cast
	}
	return d.Credits.Cast[:n]
}

func (d Details) Entry() watchlist.Entry {
	return watchlist.Entry{
		ID:          d.ID,
		Title:       d.DisplayTitle(),
		PosterPath:  d.PosterPath,
		VoteAverage: d.VoteAverage,
		ReleaseDate: d.Date(),
		MediaType:   d.MediaType,
	}
}

// APIError is a non-2xx response from TMDB.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"status_code"`
	Message    string `json:"status_message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb returned status %d", e.StatusCode)
}
