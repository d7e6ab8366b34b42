package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/cinelist/internal/tmdb"
)

var genresCmd = &cobra.Command{
	Use:   "genres [genre-id]",
	Short: "List movie genres, or popular movies in one genre",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var genreID int
		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid genre id %q", args[0])
			}
			genreID = id
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			return listTitles(cmd, a, func(ctx context.Context, page int) (*tmdb.Page, error) {
				return a.tmdb.DiscoverByGenre(ctx, genreID, page)
			})
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		genres, err := a.tmdb.Genres(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch genres: %w", err)
		}
		return printGenres(cmd.OutOrStdout(), genres)
	},
}

func init() {
	addPageFlags(genresCmd)
	addOutputFlags(genresCmd)
	rootCmd.AddCommand(genresCmd)
}
