package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/athenahq/athena/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	Long: `Start the HTTP JSON API that backs the dashboard: tasks, notifications,
stats, team roster, testimonials, and the AI advisory endpoints.

Examples:
  athena serve               # Start on the configured port
  athena serve --port 8080   # Use a custom port`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "API server port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := GetConfig()

	port := servePort
	if port == 0 {
		port = config.Server.Port
	}

	taskStore, err := GetStore()
	if err != nil {
		return err
	}
	engine := GetNotifyEngine(taskStore)

	advisoryService, err := GetAdvisoryService()
	if err != nil {
		return fmt.Errorf("configure advisory service: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, 1)

	srv := server.New(port, taskStore, engine, advisoryService, TeamRoster())
	srv.Start(&wg, errChan)

	fmt.Printf("ATHENA API listening on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		fmt.Println("\nShutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	wg.Wait()
	return nil
}
