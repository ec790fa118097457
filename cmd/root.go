package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"flightline/internal/config"
	"flightline/internal/logging"
)

const defaultDBPath = "~/.flightline.db"

var (
	cfgFile string
	cfg     = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flightline",
	Short: "Plan campaign flights on a snapping timeline.",
	Long: `flightline keeps a board of campaign flights: groups of rows, each holding
non-overlapping bookings. Bookings are created, moved and resized on a time
grid, the board is stored in SQLite and can be rendered as SVG or straight to
the terminal.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		levelString, _ := cmd.Flags().GetString("loglevel")
		if err := logging.SetLogLevel(levelString); err != nil {
			return err
		}

		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		cfg = loaded
		logging.Log.Debugf("Configuration loaded. Grid delta: %s, time zone: %s, view: %s", cfg.Grid.Delta, cfg.Grid.TimeZone, cfg.Grid.View)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML configuration file (default: built-in settings)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("db", defaultDBPath, "Path to the SQLite board database")
}

// dbPath returns the --db flag with ~ expanded.
func dbPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = defaultDBPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("error resolving database path: %w", err)
	}
	return expanded, nil
}
