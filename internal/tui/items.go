package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/user/cinelist/internal/tmdb"
	"github.com/user/cinelist/internal/watchlist"
)

type titleItem struct {
	title  tmdb.Title
	member bool
}

func (t titleItem) Title() string {
	return fmt.Sprintf("%s %s", heart(t.member), t.title.DisplayTitle())
}

func (t titleItem) Description() string {
	parts := []string{t.title.Kind().Label()}
	if d := t.title.Date(); len(d) >= 4 {
		parts = append(parts, d[:4])
	}
	parts = append(parts, fmt.Sprintf("★ %.1f", t.title.VoteAverage))
	return strings.Join(parts, " · ")
}

func (t titleItem) FilterValue() string {
	return t.title.DisplayTitle()
}

type genreItem struct {
	genre tmdb.Genre
}

func (g genreItem) Title() string       { return g.genre.Name }
func (g genreItem) Description() string { return "Browse popular titles" }
func (g genreItem) FilterValue() string { return g.genre.Name }

func heart(member bool) string {
	if member {
		return "♥"
	}
	return "♡"
}

func titleItems(titles []tmdb.Title, view watchlist.View) []list.Item {
	items := make([]list.Item, 0, len(titles))
	for _, t := range titles {
		items = append(items, titleItem{title: t, member: view.IsMember(t.ID, t.Kind())})
	}
	return items
}

func watchlistItems(view watchlist.View) []list.Item {
	entries := view.Entries()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, titleItem{title: tmdb.TitleFromEntry(e), member: true})
	}
	return items
}

// reannotate recomputes the membership marker on every title item.
func reannotate(items []list.Item, view watchlist.View) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		if ti, ok := it.(titleItem); ok {
			ti.member = view.IsMember(ti.title.ID, ti.title.Kind())
			out[i] = ti
			continue
		}
		out[i] = it
	}
	return out
}

func genreItems(genres []tmdb.Genre) []list.Item {
	items := make([]list.Item, 0, len(genres))
	for _, g := range genres {
		items = append(items, genreItem{genre: g})
	}
	return items
}
