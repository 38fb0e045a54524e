package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Loboguar4/TaskForge/internal/sweeper"
	"github.com/Loboguar4/TaskForge/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only HTTP view of the task store",
	Long: `Starts an HTTP server exposing the task list, search and the timer
run history as JSON, with the expiry sweeper running in the background.
The server is read-only; mutations stay with the CLI.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if addr == "" {
		addr = app.Config.Web.Addr
	}

	sw := sweeper.New(app.Store, app.Config.Sweep.Interval, app.Log)
	if app.Config.Sweep.Enabled {
		sw.Start()
		defer sw.Stop()
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: web.NewServer(app.Store, app.Runs).Handler(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Printf("Serving tasks on http://%s\n", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
