package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"photomap/internal/config"
)

var (
	backendName string
	verbose     bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "geotag",
	Short: "Map backend tools for photo geotagging",
	Long:  `Run the map backends' geocoding and page composition from the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		if cmd.Flags().Changed("backend") {
			cfg.App.Backend = backendName
		}
		logger = cfg.NewLogger()
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "openstreetmap", "Map backend (openstreetmap, bing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	searchCmd.Flags().StringVar(&searchBounds, "bounds", "", `Bias results towards "south,west,north,east"`)

	rootCmd.AddCommand(reverseCmd, searchCmd, marketCmd, pageCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
