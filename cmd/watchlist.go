package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/cinelist/internal/watchlist"
)

var (
	addType    string
	toggleType string
	removeType string
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage the watchlist",
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved titles in the order they were added",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return printEntries(cmd.OutOrStdout(), a.watchlist.Load())
	},
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a title to the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, mt, err := parseTitleArgs(args[0], addType)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		entry, err := fetchEntry(cmd, a, id, mt)
		if err != nil {
			return err
		}
		if a.watchlist.View().IsMember(entry.ID, entry.MediaType) {
			fmt.Fprintf(cmd.OutOrStdout(), "Already on watchlist: %s\n", entry.Title)
			return nil
		}
		if err := a.watchlist.Add(entry); err != nil {
			return fmt.Errorf("failed to add title: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", entry.Title)
		return nil
	},
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a title from the watchlist",
	Long:  "Remove every entry with the given id. With --type, only entries of that media type are removed.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := removeTitle(a.watchlist, args[0], removeType); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", args[0])
		return nil
	},
}

var watchlistToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Add a title if absent, remove it if present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, mt, err := parseTitleArgs(args[0], toggleType)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		entry := watchlist.Entry{ID: id, MediaType: mt}
		if !a.watchlist.View().IsMember(id, mt) {
			// Only an add needs the title's metadata.
			if entry, err = fetchEntry(cmd, a, id, mt); err != nil {
				return err
			}
		}

		added, err := a.watchlist.Toggle(entry)
		if err != nil {
			return fmt.Errorf("failed to toggle title: %w", err)
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", entry.Title)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed: %d\n", id)
		}
		return nil
	},
}

var watchlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every title from the watchlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		n := a.watchlist.View().Len()
		if err := a.watchlist.Clear(); err != nil {
			return fmt.Errorf("failed to clear watchlist: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d titles\n", n)
		return nil
	},
}

func fetchEntry(cmd *cobra.Command, a *app, id int, mt watchlist.MediaType) (watchlist.Entry, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := a.tmdb.Details(ctx, id, mt)
	if err != nil {
		return watchlist.Entry{}, fmt.Errorf("failed to fetch details: %w", err)
	}
	return d.Entry(), nil
}

// removeTitle reports watchlist.ErrNotFound when nothing matched.
func removeTitle(store *watchlist.Store, idArg, typeArg string) error {
	if typeArg == "" {
		id, _, err := parseTitleArgs(idArg, string(watchlist.Movie))
		if err != nil {
			return err
		}
		if !store.Contains(id) {
			return fmt.Errorf("%d: %w", id, watchlist.ErrNotFound)
		}
		return store.Remove(id)
	}

	id, mt, err := parseTitleArgs(idArg, typeArg)
	if err != nil {
		return err
	}
	if !store.ContainsTitle(id, mt) {
		return fmt.Errorf("%d (%s): %w", id, mt, watchlist.ErrNotFound)
	}
	return store.RemoveTitle(id, mt)
}

func init() {
	watchlistAddCmd.Flags().StringVar(&addType, "type", "movie", "Media type: movie or tv")
	watchlistToggleCmd.Flags().StringVar(&toggleType, "type", "movie", "Media type: movie or tv")
	watchlistRemoveCmd.Flags().StringVar(&removeType, "type", "", "Only remove entries of this media type")
	addOutputFlags(watchlistListCmd)

	watchlistCmd.AddCommand(watchlistListCmd, watchlistAddCmd, watchlistRemoveCmd, watchlistToggleCmd, watchlistClearCmd)
	rootCmd.AddCommand(watchlistCmd)
}
