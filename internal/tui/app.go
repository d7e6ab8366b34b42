package tui

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/cinelist/internal/tmdb"
	"github.com/user/cinelist/internal/watchlist"
)

type screen int

const (
	screenHome screen = iota
	screenTrending
	screenCategories
	screenSearch
	screenWatchlist
	screenGenre
	screenDetail
	numScreens
)

var tabs = []struct {
	screen screen
	label  string
}{
	{screenHome, "Popular"},
	{screenTrending, "Trending"},
	{screenCategories, "Categories"},
	{screenSearch, "Search"},
	{screenWatchlist, "Watchlist"},
}

const lastTabKey = "tui_last_tab"

// Prefs remembers small UI settings between runs. *db.Store satisfies it.
type Prefs interface {
	GetMetadata(key string) (string, error)
	SetMetadata(key, value string) error
}

type model struct {
	store   *watchlist.Store
	catalog Catalog
	prefs   Prefs
	logger  *slog.Logger

	events      <-chan watchlist.Event
	unsubscribe func()
	view        watchlist.View

	active  screen
	back    []screen
	lists   [numScreens]list.Model
	loaded  [numScreens]bool
	loading [numScreens]bool

	searchInput textinput.Model
	searching   bool
	query       string
	spinner     spinner.Model

	genre   tmdb.Genre
	detail  *tmdb.Details
	detailE *watchlist.Entry

	// confirm holds a watchlist entry waiting for y/n before removal.
	confirm *watchlist.Entry

	status  string
	width   int
	height  int
	startup tea.Cmd
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}

func initialModel(store *watchlist.Store, catalog Catalog, prefs Prefs) model {
	ti := textinput.New()
	ti.Placeholder = "Search movies and TV..."
	ti.CharLimit = 256
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		store:       store,
		catalog:     catalog,
		prefs:       prefs,
		logger:      slog.Default().With("component", "tui"),
		view:        store.View(),
		searchInput: ti,
		spinner:     sp,
		active:      screenHome,
	}
	for s := range m.lists {
		m.lists[s] = newList(screenTitle(screen(s)))
	}
	m.lists[screenWatchlist].SetItems(watchlistItems(m.view))
	m.loaded[screenWatchlist] = true

	if prefs != nil {
		if v, _ := prefs.GetMetadata(lastTabKey); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < len(tabs) {
				m.active = tabs[n].screen
			}
		}
	}

	m.events, m.unsubscribe = store.Subscribe()
	m, m.startup = m.focus(m.active)
	return m
}

func screenTitle(s screen) string {
	for _, t := range tabs {
		if t.screen == s {
			return t.label
		}
	}
	if s == screenGenre {
		return "Genre"
	}
	return "Details"
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events), m.startup)
}

// focus activates a screen. Every focus re-reads the store so edits made
// outside this process show up.
func (m model) focus(s screen) (model, tea.Cmd) {
	m.active = s
	m.view = m.store.Refresh()
	m.syncMembership()

	if m.prefs != nil {
		for i, t := range tabs {
			if t.screen == s {
				if err := m.prefs.SetMetadata(lastTabKey, strconv.Itoa(i)); err != nil {
					m.logger.Warn("could not save last tab", "error", err)
				}
			}
		}
	}

	if s == screenSearch {
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	}
	m.searching = false
	m.searchInput.Blur()

	if m.loaded[s] || m.loading[s] {
		return m, nil
	}
	return m.reload(s)
}

func (m model) reload(s screen) (model, tea.Cmd) {
	var cmd tea.Cmd
	switch s {
	case screenHome:
		cmd = m.loadPopular()
	case screenTrending:
		cmd = m.loadTrending()
	case screenCategories:
		cmd = m.loadGenres()
	case screenGenre:
		cmd = m.loadGenre(m.genre)
	case screenSearch:
		if q := m.searchInput.Value(); q != "" {
			m.query = q
			cmd = m.loadSearch(q)
		}
	case screenWatchlist:
		m.view = m.store.Refresh()
		m.syncMembership()
	}
	if cmd != nil {
		m.loading[s] = true
	}
	return m, cmd
}

func (m model) push(s screen) model {
	m.back = append(m.back, m.active)
	m.active = s
	return m
}

func (m model) pop() (model, tea.Cmd) {
	if len(m.back) == 0 {
		return m, nil
	}
	prev := m.back[len(m.back)-1]
	m.back = m.back[:len(m.back)-1]
	return m.focus(prev)
}

// syncMembership pushes the current projection into every list.
func (m *model) syncMembership() {
	for s := range m.lists {
		if screen(s) == screenWatchlist {
			m.lists[s].SetItems(watchlistItems(m.view))
			continue
		}
		if len(m.lists[s].Items()) > 0 {
			m.lists[s].SetItems(reannotate(m.lists[s].Items(), m.view))
		}
	}
}

func (m model) selectedEntry() (watchlist.Entry, bool) {
	if m.active == screenDetail {
		if m.detailE == nil {
			return watchlist.Entry{}, false
		}
		return *m.detailE, true
	}
	if item, ok := m.lists[m.active].SelectedItem().(titleItem); ok {
		return item.title.Entry(), true
	}
	return watchlist.Entry{}, false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for s := range m.lists {
			m.lists[s].SetSize(msg.Width, msg.Height-6)
		}
		m.searchInput.Width = msg.Width - 20

	case titlesMsg:
		if !m.wantsTitles(msg) {
			m.logger.Debug("dropping stale listing", "screen", int(msg.screen), "key", msg.key)
			return m, nil
		}
		m.loading[msg.screen] = false
		if msg.err != nil {
			m.logger.Error("listing failed", "screen", int(msg.screen), "error", msg.err)
			m.status = fmt.Sprintf("Could not load titles: %v", msg.err)
			m.lists[msg.screen].SetItems(nil)
			return m, nil
		}
		m.loaded[msg.screen] = true
		m.lists[msg.screen].SetItems(titleItems(msg.titles, m.view))
		if msg.screen == screenSearch && len(msg.titles) == 0 {
			m.status = "No results found."
		}
		return m, nil

	case genresMsg:
		m.loading[screenCategories] = false
		if msg.err != nil {
			m.logger.Error("genre list failed", "error", msg.err)
			m.status = fmt.Sprintf("Could not load categories: %v", msg.err)
			return m, nil
		}
		m.loaded[screenCategories] = true
		m.lists[screenCategories].SetItems(genreItems(msg.genres))
		return m, nil

	case detailMsg:
		if m.detailE == nil || m.detailE.Key() != msg.key {
			m.logger.Debug("dropping stale details", "key", msg.key.String())
			return m, nil
		}
		m.loading[screenDetail] = false
		if msg.err != nil {
			m.logger.Error("details failed", "error", msg.err)
			m.status = fmt.Sprintf("Could not load details: %v", msg.err)
			return m, nil
		}
		m.detail = msg.details
		e := msg.details.Entry()
		m.detailE = &e
		return m, nil

	case toggleMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not update watchlist: %v", msg.err)
			return m, nil
		}
		if msg.added {
			m.status = fmt.Sprintf("Added %q to your watchlist", msg.entry.Title)
		} else {
			m.status = fmt.Sprintf("Removed %q from your watchlist", msg.entry.Title)
		}
		m.view = m.store.View()
		m.syncMembership()
		return m, nil

	case storeMsg:
		if !msg.ok {
			return m, nil
		}
		// The event may lag behind a later mutation; the store's view is current.
		m.view = m.store.View()
		m.syncMembership()
		return m, waitForEvent(m.events)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.active != screenDetail {
		var cmd tea.Cmd
		m.lists[m.active], cmd = m.lists[m.active].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, m.quit(), true
	}

	if m.searching {
		switch key {
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			return m, nil, true
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			m.status = ""
			m.query = m.searchInput.Value()
			m.loading[screenSearch] = true
			return m, m.loadSearch(m.query), true
		}
		return m, nil, false
	}

	if m.confirm != nil {
		e := *m.confirm
		m.confirm = nil
		if key == "y" || key == "Y" {
			m.status = ""
			return m, m.toggle(e), true
		}
		m.status = fmt.Sprintf("Kept %q on your watchlist", e.Title)
		return m, nil, true
	}

	switch key {
	case "q":
		return m, m.quit(), true
	case "1", "2", "3", "4", "5":
		n := int(key[0] - '1')
		m.back = nil
		next, cmd := m.focus(tabs[n].screen)
		return next, cmd, true
	case "tab", "shift+tab":
		m.back = nil
		next, cmd := m.focus(m.nextTab(key == "tab"))
		return next, cmd, true
	case "/":
		m.back = nil
		next, cmd := m.focus(screenSearch)
		return next, cmd, true
	case "esc":
		next, cmd := m.pop()
		return next, cmd, true
	case "r":
		m.status = ""
		next, cmd := m.reload(m.active)
		return next, cmd, true
	case "w":
		e, ok := m.selectedEntry()
		if !ok {
			return m, nil, true
		}
		if m.active == screenWatchlist {
			m.confirm = &e
			m.status = fmt.Sprintf("Remove %q from your watchlist? (y/n)", e.Title)
			return m, nil, true
		}
		return m, m.toggle(e), true
	case "enter":
		return m.open()
	}
	return m, nil, false
}

func (m model) open() (model, tea.Cmd, bool) {
	switch item := m.lists[m.active].SelectedItem().(type) {
	case genreItem:
		m.genre = item.genre
		m.lists[screenGenre].Title = item.genre.Name
		m.lists[screenGenre].SetItems(nil)
		m = m.push(screenGenre)
		m.loaded[screenGenre] = false
		next, cmd := m.reload(screenGenre)
		return next, cmd, true
	case titleItem:
		if m.active == screenDetail {
			return m, nil, true
		}
		m.detail = nil
		e := item.title.Entry()
		m.detailE = &e
		m = m.push(screenDetail)
		m.loading[screenDetail] = true
		return m, m.loadDetails(e.ID, e.MediaType), true
	}
	return m, nil, true
}

// wantsTitles reports whether a listing reply still answers the screen's
// current request.
func (m model) wantsTitles(msg titlesMsg) bool {
	switch msg.screen {
	case screenGenre:
		return msg.key == strconv.Itoa(m.genre.ID)
	case screenSearch:
		return msg.key == m.query
	}
	return true
}

func (m model) nextTab(forward bool) screen {
	cur := 0
	for i, t := range tabs {
		if t.screen == m.active {
			cur = i
		}
	}
	if forward {
		return tabs[(cur+1)%len(tabs)].screen
	}
	return tabs[(cur-1+len(tabs))%len(tabs)].screen
}

func (m model) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return tea.Quit
}

// Run starts the TUI application
func Run(store *watchlist.Store, catalog Catalog, prefs Prefs) error {
	p := tea.NewProgram(initialModel(store, catalog, prefs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
