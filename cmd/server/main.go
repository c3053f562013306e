package main

import (
	"context"
	"fmt"

	"github.com/avoseb/go-note-keeper/internal/adapter"
	"github.com/avoseb/go-note-keeper/internal/config"
	httphandler "github.com/avoseb/go-note-keeper/internal/handler/http"
	"github.com/avoseb/go-note-keeper/internal/logger"
	"github.com/avoseb/go-note-keeper/internal/render"
	"github.com/avoseb/go-note-keeper/internal/server"
	"github.com/avoseb/go-note-keeper/internal/service"
	"github.com/avoseb/go-note-keeper/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("note-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(*storages, render.NewMarkdown(), render.NewPDF(), log)

	// OAuth is optional: without credentials the password flow still works
	// and the /auth/google routes are simply not registered.
	var identityProvider adapter.IdentityProvider
	if cfg.OAuth.GoogleClientID != "" {
		identityProvider, err = adapter.NewGoogleProvider(cfg.OAuth, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error configuring google oauth")
		}
	}

	handler := httphandler.NewHandler(services, identityProvider, cfg.App.SessionCookieName, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
