package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chaz8081/blescan/internal/ble"
	"github.com/chaz8081/blescan/internal/config"
	"github.com/chaz8081/blescan/internal/export"
	"github.com/chaz8081/blescan/internal/hotkey"
	"github.com/chaz8081/blescan/internal/scan"
	"github.com/chaz8081/blescan/internal/tui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "path to config file (default: ~/.config/blescan/config.yaml)")
	plain := flag.Bool("plain", false, "run one scan without the TUI and print the device report")
	initConfig := flag.Bool("init", false, "write a default config file and exit")
	flag.Parse()

	if *initConfig {
		path, err := config.WriteDefault()
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		if path == "" {
			fmt.Println("Config already exists at", config.DefaultConfigPath())
			return
		}
		fmt.Println("Wrote default config to", path)
		return
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	closeLog, err := setupLogging(cfg, *plain)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	if *plain {
		printBanner(cfg)
	}

	// Radio and the collaborators the controller checks before each scan
	radio := ble.NewTinyGoRadio()
	perms := ble.NewAdapterPermissions(radio)
	checker := scan.Checker{
		Radio:       radio,
		Permissions: perms,
		Location:    ble.StaticLocation(cfg.Scan.LocationEnabled),
	}

	store := scan.NewStore(scan.InitialState(cfg.Scan.FilterConnectable))
	ctrl := scan.NewController(checker, store, scan.Options{
		Duration:     cfg.Scan.Duration,
		TickInterval: cfg.Scan.TickInterval,
	})
	defer ctrl.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Hotkey.Enabled {
		listener := hotkey.NewListener(cfg.Hotkey.Keys, cfg.Hotkey.Mode)
		go listener.Start()
		go hotkey.Dispatch(ctx, listener.Events(), ctrl)
		slog.Info("[HOTKEY] listener ready", "keys", strings.Join(cfg.Hotkey.Keys, "+"), "mode", cfg.Hotkey.Mode)
	}

	if *plain {
		code := runPlain(ctx, ctrl, perms)
		ctrl.Close()
		closeLog()
		os.Exit(code)
	}

	states, unsubscribe := store.Subscribe()
	defer unsubscribe()

	exporter := export.NewExporter(cfg.Export.Method)
	program := tea.NewProgram(tui.New(ctx, ctrl, perms, exporter, states), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		slog.Error("tui exited", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		ctrl.Close()
		os.Exit(1)
	}
	slog.Info("Goodbye!")
}

// runPlain performs one scan session and prints the result to stdout.
func runPlain(ctx context.Context, ctrl *scan.Controller, perms ble.Permissions) int {
	select {
	case granted := <-perms.Request(ctx):
		ctrl.PermissionResult(granted)
	case <-ctx.Done():
		return 130
	}

	stopOnSignal := context.AfterFunc(ctx, ctrl.Stop)
	defer stopOnSignal()

	ctrl.Start()
	ctrl.Wait()

	st := ctrl.Store().Get()
	if len(st.Devices) > 0 {
		fmt.Print(export.Report(st.Devices, st.FilterConnectable))
		fmt.Println()
	}
	fmt.Println(st.Status)
	if st.StatusKind == scan.StatusError {
		return 1
	}
	return 0
}

// setupLogging installs the default slog logger. The TUI owns the terminal,
// so outside plain mode logs go to the configured file.
func setupLogging(cfg *config.Config, plain bool) (func(), error) {
	level := config.ParseLogLevel(cfg.LogLevel)
	var w io.Writer = os.Stderr
	closeFn := func() {}

	if !plain {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	// Try default config path
	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		return cfg, nil
	}

	// No config file, use defaults
	return config.Default(), nil
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config) {
	fmt.Println("=== blescan ===")
	fmt.Printf("  Duration:  %s (tick %s)\n", cfg.Scan.Duration, cfg.Scan.TickInterval)
	fmt.Printf("  Filter:    connectable only = %t\n", cfg.Scan.FilterConnectable)
	if cfg.Hotkey.Enabled {
		fmt.Printf("  Hotkey:    %s (%s mode)\n", strings.Join(cfg.Hotkey.Keys, "+"), cfg.Hotkey.Mode)
	}
	fmt.Printf("  Log:       %s\n", cfg.LogLevel)
	fmt.Println("===============")
}
