package main

import (
	"fmt"
	"os"

	"bee-go/internal/app"
	"bee-go/internal/bee"
	"bee-go/internal/config"
	"bee-go/internal/database"
	"bee-go/internal/token"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// command identifies the CLI command being run (e.g. "Login", "PublishPost").
func newApp(cmd *cobra.Command, command string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config (run 'bee config init' first): %w", err)
	}

	a, err := app.New(cmd.Context(), cfg, command)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "bee",
	Short: "Terminal client for the SnapBee photo-sharing network",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and local storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		clientID := uuid.New().String()
		cfg := config.NewConfig(clientID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		// Bring the local drafts/journal database to the latest schema.
		db, err := database.NewStoreFromConfig(cfg.Database, bee.RealClock{})
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Client ID: %s\n", clientID)
		fmt.Printf("Base Dir:  %s\n", defaults["base_dir"])
		fmt.Printf("Base URL:  %s\n", cfg.BaseURL)
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
		fmt.Printf("Client ID: %s\n", cfg.ClientID)
		fmt.Printf("Base URL:  %s\n", cfg.BaseURL)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		fmt.Printf("Token:     %s\n", orDefault(cfg.Token.Type, "file"))
		fmt.Printf("Media:     %s\n", orDefault(cfg.Media.Type, "filesystem"))
		fmt.Printf("Database:  %s\n", orDefault(cfg.Database.Type, "sqlite"))
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage the token encryption key pair",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the age key pair for encrypted token storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if cfg.Token.Type != "age" {
			return fmt.Errorf("token store type is %q; set [token] type = \"age\" in the config first", orDefault(cfg.Token.Type, "file"))
		}

		store := token.NewAgeStore(cfg.Token.Path, cfg.Token.RecipientPath, cfg.Token.IdentityPath)
		if err := store.Setup(); err != nil {
			return fmt.Errorf("generating key pair: %w", err)
		}

		fmt.Printf("Recipient: %s\n", cfg.Token.RecipientPath)
		fmt.Printf("Identity:  %s\n", cfg.Token.IdentityPath)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View local command history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.Journal().RecentCommands(limit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No commands recorded.")
			return nil
		}

		for _, rec := range records {
			duration := ""
			if rec.FinishedAt != nil {
				duration = rec.FinishedAt.Sub(rec.StartedAt).String()
			}
			fmt.Printf("#%d  %-15s  %s  %-8s  %s\n",
				rec.ID,
				rec.Command,
				rec.StartedAt.Format("2006-01-02 15:04:05"),
				rec.Status,
				duration,
			)
		}
		return nil
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of commands to show")
}
