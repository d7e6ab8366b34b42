package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/cinelist/internal/tmdb"
	"github.com/user/cinelist/internal/watchlist"
)

// Catalog is the remote metadata the screens browse. *tmdb.Client satisfies it.
type Catalog interface {
	Popular(ctx context.Context, page int) (*tmdb.Page, error)
	Trending(ctx context.Context, mediaType, window string, page int) (*tmdb.Page, error)
	Search(ctx context.Context, query string, page int) (*tmdb.Page, error)
	Details(ctx context.Context, id int, mediaType watchlist.MediaType) (*tmdb.Details, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	DiscoverByGenre(ctx context.Context, genreID int, page int) (*tmdb.Page, error)
}

// titlesMsg carries a listing. key names the request (genre id, search
// query) so a late reply for an abandoned request can be dropped.
type titlesMsg struct {
	screen screen
	key    string
	titles []tmdb.Title
	err    error
}

type genresMsg struct {
	genres []tmdb.Genre
	err    error
}

type detailMsg struct {
	key     watchlist.Key
	details *tmdb.Details
	err     error
}

type toggleMsg struct {
	entry watchlist.Entry
	added bool
	err   error
}

type storeMsg struct {
	event watchlist.Event
	ok    bool
}

func waitForEvent(events <-chan watchlist.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		return storeMsg{event: ev, ok: ok}
	}
}

func fetchTitles(s screen, key string, fetch func(ctx context.Context) (*tmdb.Page, error)) tea.Cmd {
	return func() tea.Msg {
		p, err := fetch(context.Background())
		if err != nil {
			return titlesMsg{screen: s, key: key, err: err}
		}
		return titlesMsg{screen: s, key: key, titles: p.Results}
	}
}

func (m model) loadPopular() tea.Cmd {
	return fetchTitles(screenHome, "", func(ctx context.Context) (*tmdb.Page, error) {
		return m.catalog.Popular(ctx, 1)
	})
}

func (m model) loadTrending() tea.Cmd {
	return fetchTitles(screenTrending, "", func(ctx context.Context) (*tmdb.Page, error) {
		return m.catalog.Trending(ctx, "all", "week", 1)
	})
}

func (m model) loadSearch(query string) tea.Cmd {
	return fetchTitles(screenSearch, query, func(ctx context.Context) (*tmdb.Page, error) {
		return m.catalog.Search(ctx, query, 1)
	})
}

func (m model) loadGenre(g tmdb.Genre) tea.Cmd {
	return fetchTitles(screenGenre, strconv.Itoa(g.ID), func(ctx context.Context) (*tmdb.Page, error) {
		return m.catalog.DiscoverByGenre(ctx, g.ID, 1)
	})
}

func (m model) loadGenres() tea.Cmd {
	return func() tea.Msg {
		genres, err := m.catalog.Genres(context.Background())
		return genresMsg{genres: genres, err: err}
	}
}

func (m model) loadDetails(id int, mt watchlist.MediaType) tea.Cmd {
	return func() tea.Msg {
		d, err := m.catalog.Details(context.Background(), id, mt)
		return detailMsg{key: watchlist.Key{ID: id, MediaType: mt}, details: d, err: err}
	}
}

func (m model) toggle(e watchlist.Entry) tea.Cmd {
	return func() tea.Msg {
		added, err := m.store.Toggle(e)
		return toggleMsg{entry: e, added: added, err: err}
	}
}
