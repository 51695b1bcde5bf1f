package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the maze SSH server",
	Long: `Start an SSH server that lets users connect and watch mazes grow.

Each SSH connection gets its own viewer and its own maze, sized to the
connecting terminal. Runs from every session go to the server's history.
Connections beyond --max-sessions are turned away.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.maze/host_key

Examples:
  maze serve                           # Listen on :23234 with auto-generated key
  maze serve --ssh :2222               # Listen on port 2222
  maze serve --host-key ./my_host_key  # Use specific host key
  maze serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Concurrent session limit, 0 = unlimited (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	mazeCfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.DBPath = mazeCfg.Storage.DBPath
	cfg.Maze = runtimeConfig(mazeCfg, 0, 0)
	cfg.FitTerminal = mazeCfg.Grid.FitTerminal
	if mazeCfg.SSH.Address != "" {
		cfg.Address = mazeCfg.SSH.Address
	}
	if mazeCfg.SSH.HostKeyPath != "" {
		cfg.HostKeyPath = mazeCfg.SSH.HostKeyPath
	}
	if mazeCfg.SSH.IdleTimeout > 0 {
		cfg.IdleTimeout = mazeCfg.SSH.IdleTimeout
	}
	cfg.MaxSessions = mazeCfg.SSH.MaxSessions

	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if cmd.Flags().Changed("max-sessions") {
		cfg.MaxSessions = flagMaxSessions
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting maze SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
