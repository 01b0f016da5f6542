package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/structmc/structmc/pkg/export"
	"github.com/structmc/structmc/pkg/store"
)

func newServeCmd() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve finished runs over HTTP",
		Long: `Serve exposes a read-only HTTP API over the configured run store:

  GET /runs            list run IDs
  GET /runs/{id}       full run record as JSON
  GET /runs/{id}/dot   best structure in Graphviz DOT format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			st, closeStore, err := openStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()
			if st == nil {
				return errors.New("serve requires a store backend other than \"none\"")
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRunsHandler(st),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				<-ctx.Done()
				_ = srv.Close()
			}()

			logger.Info("serving runs", "addr", addr, "backend", cfg.Store.Backend)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "structmc.toml", "path to the run configuration")
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	return cmd
}

// newRunsHandler builds the read-only API router over a run store.
func newRunsHandler(st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		ids, err := st.List(req.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if ids == nil {
			ids = []string{}
		}
		writeJSON(w, map[string][]string{"runs": ids})
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		run, err := getRun(st, w, req)
		if run == nil || err != nil {
			return
		}
		writeJSON(w, run)
	})

	r.Get("/runs/{id}/dot", func(w http.ResponseWriter, req *http.Request) {
		run, err := getRun(st, w, req)
		if run == nil || err != nil {
			return
		}
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(export.ToDOT(run.Result.Variables, run.Result.BestEdges, run.Names)))
	})

	return r
}

func getRun(st store.Store, w http.ResponseWriter, req *http.Request) (*store.Run, error) {
	run, err := st.Get(req.Context(), chi.URLParam(req, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "run not found", http.StatusNotFound)
		return nil, err
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, err
	}
	return run, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
