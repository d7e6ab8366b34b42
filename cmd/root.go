package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/user/cinelist/internal/tui"
)

var (
	v         = viper.New()
	debugLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "cinelist",
	Short: "Movie and TV browser with a watchlist",
	Long:  "A TUI app to browse popular, trending and genre listings from TMDB, search titles and keep a local watchlist.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return tui.Run(a.watchlist, a.tmdb, a.prefs())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default: ~/.cinelist)")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Write debug records to the log file")
	_ = v.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}
