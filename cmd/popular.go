package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/cinelist/internal/tmdb"
)

var (
	pageFlag  int
	pagesFlag int
)

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular movies",
	Long:  "List popular movies from TMDB. Titles already on the watchlist are marked with [*].",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return listTitles(cmd, a, a.tmdb.Popular)
	},
}

// listTitles fetches --page, or pages 1..--pages concurrently, and prints them.
func listTitles(cmd *cobra.Command, a *app, fetch tmdb.PageFunc) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var titles []tmdb.Title
	if pagesFlag > 1 {
		all, err := tmdb.FetchPages(ctx, pagesFlag, fetch)
		if err != nil {
			return fmt.Errorf("failed to fetch titles: %w", err)
		}
		titles = all
	} else {
		p, err := fetch(ctx, pageFlag)
		if err != nil {
			return fmt.Errorf("failed to fetch titles: %w", err)
		}
		titles = p.Results
	}

	return printTitles(cmd.OutOrStdout(), titles, a.watchlist.View())
}

func addPageFlags(c *cobra.Command) {
	c.Flags().IntVar(&pageFlag, "page", 1, "Page to fetch")
	c.Flags().IntVar(&pagesFlag, "pages", 1, "Fetch pages 1..N concurrently")
}

func init() {
	addPageFlags(popularCmd)
	addOutputFlags(popularCmd)
	rootCmd.AddCommand(popularCmd)
}
