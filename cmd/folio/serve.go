package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termfolio/internal/logging"
	"termfolio/internal/metrics"
	"termfolio/internal/profile"
	"termfolio/internal/proxy"
	"termfolio/internal/webterm"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// serveCmd starts the HTTP service
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the AI proxy and the web terminal API",
	Long: `Starts the HTTP service:

  /api/gemini              AI proxy to the generative-language API
  /api/terminal/sessions   terminal sessions for browser front ends
  /metrics                 Prometheus metrics
  /healthz                 liveness

When a profile file is configured it is watched; new sessions pick up
edits, open sessions keep the profile they started with.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := profile.Default()
	var (
		store   *webterm.Store
		watcher *profile.Watcher
	)
	if path := cfg.Profile.Path; path != "" {
		var err error
		watcher, err = profile.NewWatcher(path, func(np *profile.Profile) {
			store.SetInterpreter(newInterpreter(np))
			metrics.RecordProfileReload()
		})
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		defer watcher.Stop()
		p = watcher.Current()
	}
	store = webterm.NewStore(newInterpreter(p), cfg.GetSessionTTL())
	if watcher != nil {
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to watch profile: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           logging.Middleware(metrics.Middleware(newServeMux(store))),
		ReadTimeout:       cfg.GetReadTimeout(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Boot("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return store.Run(gctx, 0)
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Boot("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			logging.BootError("shutdown: %v", err)
		}
		store.CloseAll()
		return err
	})
	return g.Wait()
}

// newServeMux mounts every route of the service.
func newServeMux(store *webterm.Store) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/gemini", proxy.New(proxy.Config{
		APIKey:        cfg.Server.APIKey,
		UpstreamURL:   cfg.Server.UpstreamURL,
		Model:         cfg.Server.Model,
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Timeout:       cfg.GetAITimeout(),
	}))
	webterm.NewHandler(store).Register(mux)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","sessions":%d}`+"\n", store.Len())
	})
	return mux
}
