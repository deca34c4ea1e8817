package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/arcivia/arcivia-explore/pkg/explore"
	"github.com/arcivia/arcivia-explore/pkg/heritage"
	"github.com/arcivia/arcivia-explore/pkg/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	maxServePages   = 10
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve explore listings and item details over HTTP",
	Long: `serve exposes the explore stack as JSON:

  GET /explore?category=ancient&era=Ancient&pages=2
  GET /items/{id}
  GET /health, /ready, /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := viper.GetString("serve.addr")
		srv := &http.Server{
			Addr:              addr,
			Handler:           newServeMux(a),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", addr).Bool("offline", viper.GetBool("offline")).Msg("Starting explore server")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("Shutting down explore server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	bindFlag(serveCmd, "serve.addr", "addr")
}

func newServeMux(a *app) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /ready", readyHandler(a.redis))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /explore", exploreHandler(a.source))
	mux.HandleFunc("GET /items/{id}", itemHandler(a.detail, a.pool))
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// readyHandler reports whether Redis answers. Without Redis (offline) the
// server is always ready.
func readyHandler(rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rdb != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Msg("Readiness check failed")
				http.Error(w, "Redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func exploreHandler(source explore.PageSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := queryOptions{
			Category: q.Get("category"),
			Search:   q.Get("search"),
			Era:      q["era"],
			Culture:  q["culture"],
			Sort:     q.Get("sort"),
		}
		if v := q.Get("ar"); v != "" {
			ar, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "invalid ar parameter", http.StatusBadRequest)
				return
			}
			opts.AROnly = ar
		}

		pages := 1
		if v := q.Get("pages"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > maxServePages {
				http.Error(w, fmt.Sprintf("pages must be between 1 and %d", maxServePages), http.StatusBadRequest)
				return
			}
			pages = n
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		st, err := runExplore(ctx, source, opts.Query(), pages)
		if err != nil {
			log.Warn().Err(err).Str("category", opts.Category).Msg("Explore request aborted")
			http.Error(w, "request cancelled", http.StatusServiceUnavailable)
			return
		}
		respondJSON(w, http.StatusOK, exploreResponseFrom(st))
	}
}

func itemHandler(loader *explore.DetailLoader, pool []heritage.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		d, err := loader.Load(ctx, id, pool)
		switch {
		case errors.Is(err, explore.ErrItemNotFound):
			http.Error(w, fmt.Sprintf("item %s not found", id), http.StatusNotFound)
			return
		case err != nil:
			log.Error().Err(err).Str("id", id).Msg("Item request failed")
			http.Error(w, explore.ErrorMessage(err), http.StatusBadGateway)
			return
		}
		respondJSON(w, http.StatusOK, d)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}
