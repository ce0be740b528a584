package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bioblitz/internal/config"
	"github.com/vovakirdan/bioblitz/internal/games/bioblitz"
	"github.com/vovakirdan/bioblitz/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeSpeed  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the BioBlitz SSH server",
	Long: `Start an SSH server that lets people connect and play hotseat matches.

Each SSH connection gets its own session with a variant picker menu.
Matches are recorded per server (all sessions share the same history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bioblitz/host_key

Examples:
  bioblitz serve                           # Listen on :23235 with auto-generated key
  bioblitz serve --ssh :2222               # Listen on port 2222
  bioblitz serve --host-key ./my_host_key  # Use specific host key
  bioblitz serve --db ./matches.db         # Use specific database
  bioblitz serve --speed fast              # Faster infections for every session

Players can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSpeed, "speed", "", "Infection speed for all sessions: slow, normal, fast, instant")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagServeSpeed != "" {
		speed, err := config.ParseSpeedPreset(flagServeSpeed)
		if err != nil {
			return err
		}
		bioblitz.SetSpeed(speed)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting BioBlitz SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
