package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/bingo/internal/history"
	"github.com/robalobadob/bingo/internal/httpserver"
	"github.com/robalobadob/bingo/internal/phrases"
	"github.com/robalobadob/bingo/internal/store"
	"github.com/robalobadob/bingo/internal/telemetry"
)

var secureCookies bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bingo web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&secureCookies, "secure-cookies", false, "mark session cookies Secure with SameSite=None")
}

func serve(ctx context.Context) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel.Endpoint, cfg.OTel.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()

	// A missing default list is not fatal: sessions just start empty.
	if err := phrases.Init(ctx, cfg.Phrases.Source); err != nil {
		log.Warn().Err(err).Str("source", cfg.Phrases.Source).Msg("default phrases unavailable")
	} else {
		log.Info().Int("phrases", len(phrases.Defaults())).Msg("loaded default phrases")
	}

	var hist *history.Store
	if cfg.DB.Path != "" {
		db, err := history.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := history.Migrate(db); err != nil {
			return err
		}
		hist = history.NewStore(db)
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(httpserver.Options{
		Store:         mem,
		History:       hist,
		Defaults:      phrases.Defaults,
		Secret:        cfg.Session.Secret,
		CookieName:    cfg.Session.CookieName,
		ClientOrigin:  cfg.Server.ClientOrigin,
		SecureCookies: secureCookies,
	})
	hs := srv.HTTPServer(":" + cfg.Server.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Server.Port).Msg("starting bingo server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return store.RunJanitor(gctx, mem, time.Minute, cfg.Session.TTL)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return hs.Shutdown(sctx)
	})
	return g.Wait()
}
