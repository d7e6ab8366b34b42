package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/cinelist/internal/tmdb"
	"github.com/user/cinelist/internal/watchlist"
)

var (
	jsonOutput      bool
	plaintextOutput bool
)

func addOutputFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	c.Flags().BoolVarP(&plaintextOutput, "plaintext", "p", false, "Output as plaintext")
}

type titleRow struct {
	tmdb.Title
	InWatchlist bool `json:"in_watchlist"`
}

func printTitles(w io.Writer, titles []tmdb.Title, view watchlist.View) error {
	if jsonOutput {
		rows := make([]titleRow, 0, len(titles))
		for _, t := range titles {
			rows = append(rows, titleRow{Title: t, InWatchlist: view.IsMember(t.ID, t.Kind())})
		}
		return outputJSON(w, rows)
	}
	if plaintextOutput {
		return outputPlaintext(w, titles)
	}
	return outputDefault(w, titles, view)
}

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputPlaintext(w io.Writer, titles []tmdb.Title) error {
	for _, t := range titles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Kind(), t.Date(), t.DisplayTitle())
	}
	return nil
}

func outputDefault(w io.Writer, titles []tmdb.Title, view watchlist.View) error {
	if len(titles) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	for i, t := range titles {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, marker(view.IsMember(t.ID, t.Kind())), titleLine(t))
		if t.Overview != "" {
			fmt.Fprintf(w, "   %s\n", truncate(t.Overview, 100))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func titleLine(t tmdb.Title) string {
	parts := []string{t.DisplayTitle()}
	if d := t.Date(); len(d) >= 4 {
		parts[0] = fmt.Sprintf("%s (%s)", parts[0], d[:4])
	}
	parts = append(parts, t.Kind().Label(), fmt.Sprintf("★ %.1f", t.VoteAverage), fmt.Sprintf("id %d", t.ID))
	return strings.Join(parts, " · ")
}

func marker(member bool) string {
	if member {
		return "[*]"
	}
	return "[ ]"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func printDetails(w io.Writer, d *tmdb.Details, member bool) error {
	if jsonOutput {
		return outputJSON(w, struct {
			*tmdb.Details
			InWatchlist bool `json:"in_watchlist"`
		}{d, member})
	}
	if plaintextOutput {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, d.MediaType, d.Date(), d.DisplayTitle())
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", marker(member), d.DisplayTitle())
	meta := []string{d.MediaType.Label()}
	if date := d.Date(); date != "" {
		meta = append(meta, date)
	}
	meta = append(meta, fmt.Sprintf("★ %.1f (%d votes)", d.VoteAverage, d.VoteCount))
	if rt := d.RuntimeMinutes(); rt > 0 {
		meta = append(meta, fmt.Sprintf("%d min", rt))
	}
	fmt.Fprintf(w, "   %s\n", strings.Join(meta, " · "))
	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		fmt.Fprintf(w, "   %s\n", strings.Join(names, ", "))
	}
	if d.Tagline != "" {
		fmt.Fprintf(w, "\n   %s\n", d.Tagline)
	}
	if d.Overview != "" {
		fmt.Fprintf(w, "\n   %s\n", d.Overview)
	}
	if d.PosterURL != "" {
		fmt.Fprintf(w, "\n   Poster: %s\n", d.PosterURL)
	}
	if cast := d.TopCast(5); len(cast) > 0 {
		fmt.Fprintln(w, "\n   Cast:")
		for _, c := range cast {
			fmt.Fprintf(w, "     %s as %s\n", c.Name, c.Character)
		}
	}
	return nil
}

func printEntries(w io.Writer, entries []watchlist.Entry) error {
	if jsonOutput {
		return outputJSON(w, entries)
	}
	if plaintextOutput {
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.MediaType, e.ReleaseDate, e.Title)
		}
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "Your watchlist is empty.")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, marker(true), titleLine(tmdb.TitleFromEntry(e)))
	}
	return nil
}

func printGenres(w io.Writer, genres []tmdb.Genre) error {
	if jsonOutput {
		return outputJSON(w, genres)
	}
	for _, g := range genres {
		fmt.Fprintf(w, "%d\t%s\n", g.ID, g.Name)
	}
	return nil
}
