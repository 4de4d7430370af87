package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bodul/xpuzzle/internal/logger"
	"github.com/bodul/xpuzzle/internal/server"
	"github.com/bodul/xpuzzle/internal/wordbank"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API for puzzle generation, the word bank and collaborative play.

Examples:
  xpuzzle serve
  PORT=3000 xpuzzle serve --config prod.toml`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.New("serve")
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := server.NewStore()
	if cfg.Store.Path != "" {
		db, err := server.OpenBadger(cfg.Store.Path)
		if err != nil {
			return err
		}
		store, err = server.OpenStore(db)
		if err != nil {
			db.Close()
			return err
		}
		log.Infof("Loaded %d puzzles from %s", len(store.ListPuzzles()), cfg.Store.Path)
	}
	defer store.Close()

	bank := wordbank.New()
	if path := cfg.Generator.WordList; path != "" {
		n, rejected, err := bank.LoadInto(path)
		if err != nil {
			return err
		}
		if len(rejected) > 0 {
			log.Warnf("Skipped %d invalid keywords in %s", len(rejected), path)
		}
		log.Infof("Word bank holds %d words from %s", n, path)
	}

	var clues server.ClueSuggester
	if cfg.Gemini.ProjectID != "" {
		gemini, err := server.NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return err
		}
		clues = gemini
		model, region := gemini.Model()
		log.Infof("Gemini client ready (project: %s, model: %s, region: %s)", cfg.Gemini.ProjectID, model, region)
	} else {
		log.Info("GCP_PROJECT_ID not set, clue suggestion disabled")
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewServer(store, bank, clues, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Server listening on http://localhost:%s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if path := cfg.Generator.WordList; path != "" {
		g.Go(func() error {
			// A broken watcher only stops reloads, not the server.
			if err := bank.Watch(gctx, path, logger.New("wordbank")); err != nil {
				log.Warnf("Word list reload disabled: %v", err)
			}
			return nil
		})
	}
	return g.Wait()
}
