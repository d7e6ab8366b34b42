package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/cinelist/internal/watchlist"
)

var (
	activeTab = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Padding(0, 1)

	inactiveTab = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	heartStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	switch m.active {
	case screenSearch:
		b.WriteString(searchStyle.Render(m.searchInput.View()))
		b.WriteString("\n")
		b.WriteString(m.body())
	case screenDetail:
		b.WriteString(m.detailView())
	case screenWatchlist:
		if m.view.Len() == 0 {
			b.WriteString(titleStyle.Render("Your watchlist is empty"))
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("Find something on the Search or Popular tabs and press w to save it."))
		} else {
			b.WriteString(m.lists[screenWatchlist].View())
		}
	default:
		b.WriteString(m.body())
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}

	help := "[1-5/tab]screens [j/k]nav [enter]open [w]atchlist toggle [/]search [r]eload [esc]back [q]uit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m model) body() string {
	if m.loading[m.active] {
		return fmt.Sprintf("%s Loading...", m.spinner.View())
	}
	return m.lists[m.active].View()
}

func (m model) tabBar() string {
	rendered := make([]string, 0, len(tabs)+1)
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t.label)
		if t.screen == screenWatchlist {
			label = fmt.Sprintf("%s (%d)", label, m.view.Len())
		}
		if t.screen == m.active || (len(m.back) > 0 && t.screen == m.back[0]) {
			rendered = append(rendered, activeTab.Render(label))
		} else {
			rendered = append(rendered, inactiveTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) detailView() string {
	if m.loading[screenDetail] {
		return fmt.Sprintf("%s Loading details...", m.spinner.View())
	}
	d := m.detail
	if d == nil {
		return dimStyle.Render("No details available.")
	}

	var b strings.Builder
	member := m.view.IsMember(d.ID, d.MediaType)

	b.WriteString(heartStyle.Render(heart(member)))
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(d.DisplayTitle()))
	b.WriteString("\n")

	meta := []string{d.MediaType.Label()}
	if e := m.detailE; e != nil && e.Year() != "" {
		meta = append(meta, e.Year())
	}
	meta = append(meta, fmt.Sprintf("★ %.1f (%d votes)", d.VoteAverage, d.VoteCount))
	if rt := d.RuntimeMinutes(); rt > 0 {
		meta = append(meta, fmt.Sprintf("%d min", rt))
	}
	if d.MediaType == watchlist.TV && d.NumberOfSeasons > 0 {
		meta = append(meta, fmt.Sprintf("%d seasons", d.NumberOfSeasons))
	}
	b.WriteString(dimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		b.WriteString(dimStyle.Render(strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	if d.Tagline != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Italic(true).Render(d.Tagline))
		b.WriteString("\n")
	}
	if d.Overview != "" {
		width := m.width - 4
		if width < 20 {
			width = 76
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(d.Overview))
		b.WriteString("\n")
	}
	if d.PosterURL != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Poster: " + d.PosterURL))
		b.WriteString("\n")
	}
	if cast := d.TopCast(8); len(cast) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Cast"))
		b.WriteString("\n")
		for _, c := range cast {
			b.WriteString(fmt.Sprintf("  %s as %s\n", c.Name, c.Character))
		}
	}
	return b.String()
}
