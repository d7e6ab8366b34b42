package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinelist/internal/tmdb"
	"github.com/user/cinelist/internal/watchlist"
)

func memWatchlist(t *testing.T) *watchlist.Store {
	t.Helper()
	return watchlist.NewStore(watchlist.NewFileBackend(afero.NewMemMapFs(), "/data"))
}

func withOutputFlags(t *testing.T, asJSON, plain bool) {
	t.Helper()
	jsonOutput, plaintextOutput = asJSON, plain
	t.Cleanup(func() { jsonOutput, plaintextOutput = false, false })
}

var listing = []tmdb.Title{
	{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4, MediaType: "movie"},
	{ID: 1396, Name: "Breaking Bad", FirstAirDate: "2008-01-20", VoteAverage: 8.9, MediaType: "tv"},
}

func TestPrintTitlesMarksWatchlistMembers(t *testing.T) {
	withOutputFlags(t, false, false)
	store := memWatchlist(t)
	require.NoError(t, store.Add(listing[0].Entry()))

	var buf bytes.Buffer
	require.NoError(t, printTitles(&buf, listing, store.View()))

	out := buf.String()
	assert.Contains(t, out, "1. [*] Inception (2010) · Movie")
	assert.Contains(t, out, "2. [ ] Breaking Bad (2008) · TV")
}

func TestPrintTitlesJSON(t *testing.T) {
	withOutputFlags(t, true, false)
	store := memWatchlist(t)
	require.NoError(t, store.Add(listing[1].Entry()))

	var buf bytes.Buffer
	require.NoError(t, printTitles(&buf, listing, store.View()))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Inception", rows[0]["title"])
	assert.Equal(t, false, rows[0]["in_watchlist"])
	assert.Equal(t, "Breaking Bad", rows[1]["name"])
	assert.Equal(t, true, rows[1]["in_watchlist"])
}

func TestPrintTitlesPlaintext(t *testing.T) {
	withOutputFlags(t, false, true)

	var buf bytes.Buffer
	require.NoError(t, printTitles(&buf, listing[:1], memWatchlist(t).View()))
	assert.Equal(t, "27205\tmovie\t2010-07-15\tInception\n", buf.String())
}

func TestPrintTitlesEmpty(t *testing.T) {
	withOutputFlags(t, false, false)

	var buf bytes.Buffer
	require.NoError(t, printTitles(&buf, nil, memWatchlist(t).View()))
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestPrintEntries(t *testing.T) {
	withOutputFlags(t, false, false)

	var buf bytes.Buffer
	require.NoError(t, printEntries(&buf, nil))
	assert.Equal(t, "Your watchlist is empty.\n", buf.String())

	buf.Reset()
	require.NoError(t, printEntries(&buf, []watchlist.Entry{listing[0].Entry()}))
	assert.Contains(t, buf.String(), "1. [*] Inception (2010)")
}

func TestPrintDetails(t *testing.T) {
	withOutputFlags(t, false, false)
	d := &tmdb.Details{
		ID:          27205,
		Title:       "Inception",
		Overview:    "Dreams within dreams.",
		ReleaseDate: "2010-07-15",
		Runtime:     148,
		Genres:      []tmdb.Genre{{ID: 28, Name: "Action"}},
		MediaType:   watchlist.Movie,
		PosterURL:   "https://image.tmdb.org/t/p/w500/inc.jpg",
	}

	var buf bytes.Buffer
	require.NoError(t, printDetails(&buf, d, true))

	out := buf.String()
	assert.Contains(t, out, "[*] Inception")
	assert.Contains(t, out, "148 min")
	assert.Contains(t, out, "Action")
	assert.Contains(t, out, "Dreams within dreams.")
	assert.Contains(t, out, "Poster: https://image.tmdb.org/t/p/w500/inc.jpg")
}

func TestPrintDetailsJSONIncludesPosterURL(t *testing.T) {
	withOutputFlags(t, true, false)
	d := &tmdb.Details{ID: 27205, Title: "Inception", MediaType: watchlist.Movie, PosterURL: "https://image.tmdb.org/t/p/w500/inc.jpg"}

	var buf bytes.Buffer
	require.NoError(t, printDetails(&buf, d, false))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/inc.jpg", got["poster_url"])
	assert.Equal(t, false, got["in_watchlist"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
