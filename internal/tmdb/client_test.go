package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinelist/internal/config"
	"github.com/user/cinelist/internal/watchlist"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.TMDBConfig{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		Language:     "en-US",
		Timeout:      2 * time.Second,
		Retries:      2,
	})
	c.retryDelay = time.Millisecond
	return c
}

func TestPopularTagsMovies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		fmt.Fprint(w, `{"page":2,"total_pages":10,"results":[{"id":27205,"title":"Inception","poster_path":"/inc.jpg","vote_average":8.4,"release_date":"2010-07-15"}]}`)
	})

	p, err := c.Popular(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, p.Results, 1)
	assert.Equal(t, 10, p.TotalPages)

	e := p.Results[0].Entry()
	assert.Equal(t, watchlist.Entry{
		ID: 27205, Title: "Inception", PosterPath: "/inc.jpg",
		VoteAverage: 8.4, ReleaseDate: "2010-07-15", MediaType: watchlist.Movie,
	}, e)
}

func TestSearchFiltersPeopleAndUsesName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "dark", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"page":1,"results":[
			{"id":70523,"name":"Dark","media_type":"tv","first_air_date":"2017-12-01","vote_average":8.4},
			{"id":1,"name":"Some Actor","media_type":"person"},
			{"id":2,"title":"The Dark Knight","media_type":"movie","release_date":"2008-07-16"}
		]}`)
	})

	p, err := c.Search(context.Background(), "  dark ", 1)
	require.NoError(t, err)
	require.Len(t, p.Results, 2)

	e := p.Results[0].Entry()
	assert.Equal(t, "Dark", e.Title)
	assert.Equal(t, "2017-12-01", e.ReleaseDate)
	assert.Equal(t, watchlist.TV, e.MediaType)
	assert.Equal(t, watchlist.Movie, p.Results[1].Kind())
}

func TestSearchShortQuerySkipsRequest(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	p, err := c.Search(context.Background(), " a ", 1)
	require.NoError(t, err)
	assert.Empty(t, p.Results)
	assert.Zero(t, calls.Load())
}

func TestDetailsAppendsCredits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/70523", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		fmt.Fprint(w, `{"id":70523,"name":"Dark","first_air_date":"2017-12-01","episode_run_time":[60],"poster_path":"/dark.jpg",
			"genres":[{"id":18,"name":"Drama"}],
			"credits":{"cast":[{"id":1,"name":"Louis Hofmann","character":"Jonas"},{"id":2,"name":"Lisa Vicari","character":"Martha"}]}}`)
	})

	d, err := c.Details(context.Background(), 70523, watchlist.TV)
	require.NoError(t, err)
	assert.Equal(t, "Dark", d.DisplayTitle())
	assert.Equal(t, 60, d.RuntimeMinutes())
	assert.Equal(t, []Genre{{ID: 18, Name: "Drama"}}, d.Genres)
	assert.Len(t, d.TopCast(1), 1)
	assert.Len(t, d.TopCast(5), 2)
	assert.Equal(t, watchlist.TV, d.Entry().MediaType)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/dark.jpg", d.PosterURL)
	assert.Empty(t, d.BackdropURL)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"genres":[{"id":28,"name":"Action"}]}`)
	})

	genres, err := c.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}}, genres)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNoRetryOnNotFound(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})

	_, err := c.Details(context.Background(), 1, watchlist.Movie)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, 34, apiErr.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient(config.TMDBConfig{BaseURL: "http://127.0.0.1:0"})
	_, err := c.Popular(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestTrendingAndDiscover(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/trending/tv/day":
			fmt.Fprint(w, `{"results":[{"id":1,"name":"Show"}]}`)
		case "/discover/movie":
			assert.Equal(t, "28", r.URL.Query().Get("with_genres"))
			fmt.Fprint(w, `{"results":[{"id":2,"title":"Film"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	p, err := c.Trending(context.Background(), "tv", "day", 1)
	require.NoError(t, err)
	require.Len(t, p.Results, 1)
	assert.Equal(t, watchlist.TV, p.Results[0].Kind())

	p, err = c.DiscoverByGenre(context.Background(), 28, 1)
	require.NoError(t, err)
	require.Len(t, p.Results, 1)
	assert.Equal(t, "movie", p.Results[0].MediaType)
}

func TestFetchPagesOrdersAndDedupes(t *testing.T) {
	titles, err := FetchPages(context.Background(), 3, func(ctx context.Context, page int) (*Page, error) {
		first := page*10 - 1
		if page == 2 {
			// Page 2 repeats the last title of page 1.
			first = 10
		}
		return &Page{Results: []Title{
			{ID: first, Title: "first", MediaType: "movie"},
			{ID: page * 10, Title: "second", MediaType: "movie"},
		}}, nil
	})
	require.NoError(t, err)

	var ids []int
	for _, tt := range titles {
		ids = append(ids, tt.ID)
	}
	assert.Equal(t, []int{9, 10, 20, 29, 30}, ids)
}

func TestFetchPagesPropagatesError(t *testing.T) {
	_, err := FetchPages(context.Background(), 2, func(ctx context.Context, page int) (*Page, error) {
		if page == 2 {
			return nil, errors.New("boom")
		}
		return &Page{}, nil
	})
	assert.ErrorContains(t, err, "page 2")
}

func TestImageURLs(t *testing.T) {
	c := NewClient(config.TMDBConfig{ImageBaseURL: "https://image.tmdb.org/t/p/"})
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/inc.jpg", c.PosterURL("/inc.jpg", ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w200/inc.jpg", c.PosterURL("/inc.jpg", PosterSmall))
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/bd.jpg", c.BackdropURL("/bd.jpg", ""))
	assert.Equal(t, "", c.PosterURL("", ""))
}

func TestTitleFromEntry(t *testing.T) {
	e := watchlist.Entry{ID: 70523, Title: "Dark", MediaType: watchlist.TV, ReleaseDate: "2017-12-01"}
	assert.Equal(t, e, TitleFromEntry(e).Entry())
}
