package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/cinelist/internal/watchlist"
)

var showType string

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details for a movie or series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, mt, err := parseTitleArgs(args[0], showType)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		d, err := a.tmdb.Details(ctx, id, mt)
		if err != nil {
			return fmt.Errorf("failed to fetch details: %w", err)
		}
		return printDetails(cmd.OutOrStdout(), d, a.watchlist.View().IsMember(d.ID, d.MediaType))
	},
}

func parseTitleArgs(idArg, typeArg string) (int, watchlist.MediaType, error) {
	id, err := strconv.Atoi(idArg)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid title id %q", idArg)
	}
	mt, err := watchlist.ParseMediaType(typeArg)
	if err != nil {
		return 0, "", err
	}
	return id, mt, nil
}

func init() {
	showCmd.Flags().StringVar(&showType, "type", "movie", "Media type: movie or tv")
	addOutputFlags(showCmd)
	rootCmd.AddCommand(showCmd)
}
