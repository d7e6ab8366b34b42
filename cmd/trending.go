package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/cinelist/internal/tmdb"
)

var (
	trendingType   string
	trendingWindow string
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending titles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch trendingType {
		case "all", "movie", "tv":
		default:
			return fmt.Errorf("invalid --type %q (want all, movie or tv)", trendingType)
		}
		switch trendingWindow {
		case "day", "week":
		default:
			return fmt.Errorf("invalid --window %q (want day or week)", trendingWindow)
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return listTitles(cmd, a, func(ctx context.Context, page int) (*tmdb.Page, error) {
			return a.tmdb.Trending(ctx, trendingType, trendingWindow, page)
		})
	},
}

func init() {
	trendingCmd.Flags().StringVar(&trendingType, "type", "all", "Media type: all, movie or tv")
	trendingCmd.Flags().StringVar(&trendingWindow, "window", "week", "Time window: day or week")
	addPageFlags(trendingCmd)
	addOutputFlags(trendingCmd)
	rootCmd.AddCommand(trendingCmd)
}
