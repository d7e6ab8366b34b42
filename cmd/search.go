package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/cinelist/internal/tmdb"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies and TV",
	Long:  "Search TMDB for movies and TV series. Queries shorter than two characters return nothing.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return listTitles(cmd, a, func(ctx context.Context, page int) (*tmdb.Page, error) {
			return a.tmdb.Search(ctx, query, page)
		})
	},
}

func init() {
	addPageFlags(searchCmd)
	addOutputFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
