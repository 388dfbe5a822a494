package main

import (
	"fmt"
	"os"

	"gallery-go/internal/app"
	"gallery-go/internal/config"
	"gallery-go/internal/gallery"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a GalleryApp. The caller must defer app.Close().
func newApp(cmd *cobra.Command) (*app.GalleryApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewGalleryApp(cfg, verbose)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// sortFlag returns the --sort value, or the configured default when unset.
func sortFlag(cmd *cobra.Command, a *app.GalleryApp) (gallery.SortKey, error) {
	if !cmd.Flags().Changed("sort") {
		return a.DefaultSort(), nil
	}
	s, _ := cmd.Flags().GetString("sort")
	return gallery.ParseSortKey(s)
}

var rootCmd = &cobra.Command{
	Use:          "gallery",
	Short:        "Artwork gallery browser",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		instanceID := uuid.New().String()
		cfg := config.NewConfig(instanceID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Instance ID: %s\n", instanceID)
		fmt.Printf("Base Dir:    %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Instance ID:  %s\n", cfg.InstanceID)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Database:     %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Default Sort: %s\n", cfg.Gallery.DefaultSort)
		fmt.Printf("Search Delay: %s\n", cfg.Gallery.SearchDelay)
		if cfg.Gallery.SeedFile != "" {
			fmt.Printf("Seed File:    %s\n", cfg.Gallery.SeedFile)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List artworks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sortBy, err := sortFlag(cmd, a)
		if err != nil {
			return err
		}

		artworks, err := a.List(search, sortBy)
		if err != nil {
			return err
		}
		printArtworks(os.Stdout, artworks)
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the number of stored artworks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Count()
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import artworks from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := a.Import(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d artworks\n", len(ids))
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search and sort artworks interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		out := &syncWriter{out: os.Stdout}

		b := a.NewBrowser(renderTo(out))
		if err := b.Open(); err != nil {
			return err
		}
		defer b.Close()

		if interactive {
			fmt.Fprint(out, browseHelp)
		}
		return runBrowse(b, os.Stdin, out, interactive)
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the artwork database",
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema version and artwork count",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.MigrationStatus()
		if err != nil {
			return err
		}
		n, err := a.Count()
		if err != nil {
			return err
		}

		state := "up to date"
		if !st.Current() {
			state = "needs migration"
		}
		if st.Dirty {
			state = "dirty"
		}
		fmt.Printf("Schema:   version %d of %d (%s)\n", st.Version, st.Latest, state)
		fmt.Printf("Artworks: %d\n", n)
		return nil
	},
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup PATH",
	Short: "Write a copy of the database to PATH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Backup(args[0]); err != nil {
			return err
		}
		fmt.Printf("Database backed up to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// db subcommands
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbBackupCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("search", "s", "", "Only show artworks whose title or description contains TERM")
	listCmd.Flags().String("sort", "", "Sort by popularity or year (default from config)")
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(dbCmd)
}
