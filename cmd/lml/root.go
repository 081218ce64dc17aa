package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/DonovanMods/linux-mod-launcher/internal/core"
	"github.com/DonovanMods/linux-mod-launcher/internal/domain"
	"github.com/DonovanMods/linux-mod-launcher/internal/fsys"
	"github.com/DonovanMods/linux-mod-launcher/internal/logging"
	"github.com/DonovanMods/linux-mod-launcher/internal/storage/config"

	"github.com/spf13/cobra"
)

var (
	version = "0.3.0"

	// Global flags
	configDir  string
	dataDir    string
	gameID     string
	verbose    bool
	jsonOutput bool

	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lml",
	Short: "Linux Mod Launcher - start modded games on Linux",
	Long: `lml launches BepInEx and MelonLoader games on Linux, natively or through
Steam and Proton, with per-game mod profiles.

Use subcommands for operations, or 'lml tui' for the interactive launcher.`,
	Version:           version,
	SilenceUsage:      true, // Runtime errors should not print usage
	SilenceErrors:     true, // We handle error output in Execute()
	PersistentPreRunE: setupLogging,
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: $XDG_CONFIG_HOME/lml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: $XDG_DATA_HOME/lml)")
	rootCmd.PersistentFlags().StringVarP(&gameID, "game", "g", "", "game ID to operate on")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (game list, game detect, status, history)")
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
// When --json is set and an error occurs, prints {"error":"..."} to stdout before exiting.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		logCloser.Close()
	}
	if err == nil {
		return
	}

	if jsonOutput {
		fmt.Printf(`{"error":%q}`+"\n", err.Error())
		os.Exit(1)
	}

	var le *domain.LaunchError
	if errors.As(err, &le) {
		printLaunchError(os.Stderr, le)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

// setupLogging routes the global logger to <data>/logs, and to stderr with --verbose
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg := getServiceConfig()

	level := ""
	if appConfig, err := config.Load(fsys.NewOS(), cfg.ConfigDir); err == nil {
		level = appConfig.LogLevel
	}

	opts := logging.Options{
		LogDir: filepath.Join(cfg.DataDir, "logs"),
		Level:  level,
	}
	if verbose {
		opts.Level = "debug"
		opts.Console = os.Stderr
	}

	closer, err := logging.Init(opts)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCloser = closer
	return nil
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	cfg := getServiceConfig()

	// Ensure directories exist
	if err := os.MkdirAll(cfg.ConfigDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return core.NewService(cfg)
}

// getServiceConfig returns the service configuration with defaults
func getServiceConfig() core.ServiceConfig {
	cfg := core.ServiceConfig{
		ConfigDir: configDir,
		DataDir:   dataDir,
	}

	// Apply defaults
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = config.DefaultConfigDir()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir()
	}
	return cfg
}

// requireGame ensures a game is specified, checking config for default if not provided
func requireGame(cmd *cobra.Command) error {
	if gameID != "" {
		return nil
	}

	cfg, err := config.Load(fsys.NewOS(), getServiceConfig().ConfigDir)
	if err == nil && cfg.DefaultGame != "" {
		gameID = cfg.DefaultGame
		if verbose {
			cmd.Printf("Using default game: %s\n", gameID)
		}
		return nil
	}

	return fmt.Errorf("no game specified; use --game or -g flag, or set a default with 'lml game set-default <game-id>'")
}

// gameService resolves the target game and opens a service for it. The caller
// closes the service.
func gameService(cmd *cobra.Command) (*core.Service, *domain.Game, error) {
	if err := requireGame(cmd); err != nil {
		return nil, nil, err
	}

	svc, err := initService()
	if err != nil {
		return nil, nil, fmt.Errorf("initializing service: %w", err)
	}

	game, err := svc.GetGame(gameID)
	if err != nil {
		svc.Close()
		return nil, nil, fmt.Errorf("game not found: %s", gameID)
	}
	return svc, game, nil
}

// withService runs fn against a freshly opened service and closes it afterwards
func withService(fn func(svc *core.Service) error) error {
	svc, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer svc.Close()
	return fn(svc)
}

// serviceCommand adapts a handler that needs an open service to cobra's RunE
func serviceCommand(run func(*cobra.Command, []string, *core.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *core.Service) error {
			return run(cmd, args, svc)
		})
	}
}
