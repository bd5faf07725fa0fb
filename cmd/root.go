package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathsheet/internal/config"
	"github.com/abhisek/mathsheet/internal/logging"
	"github.com/abhisek/mathsheet/internal/store"
)

var (
	settings *config.Settings
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mathsheet",
	Short: "Printable arithmetic worksheets from an LLM",
	Long: "Mathsheet generates arithmetic practice problems with a language model " +
		"and exports them as two-column Word worksheets.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}
		s, err := config.Load(path)
		if err != nil {
			return err
		}
		settings = s

		verbose, _ := cmd.Flags().GetBool("verbose")
		opts := logging.Options{Level: s.Log.Level, Verbose: verbose}
		if !cmd.HasParent() {
			// stdout belongs to the TUI.
			file, err := logFile(s)
			if err != nil {
				return err
			}
			opts.File = file
		}
		l, err := logging.New(opts)
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("settings loaded", zap.String("path", path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to settings file (overrides MATHSHEET_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHSHEET_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHSHEET_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// outputDir returns the export directory: the flag, then settings, then
// the working directory.
func outputDir(flag string) string {
	switch {
	case flag != "":
		return flag
	case settings.OutputDir != "":
		return settings.OutputDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func logFile(s *config.Settings) (string, error) {
	if s.Log.File != "" {
		return s.Log.File, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mathsheet.log"), nil
}
