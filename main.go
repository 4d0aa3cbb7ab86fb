package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/godwish/build-portal/api/rest/server"
	"github.com/godwish/build-portal/api/rest/v1/routes"
	"github.com/godwish/build-portal/internal/config"
	"github.com/godwish/build-portal/internal/database"
	"github.com/godwish/build-portal/internal/repository"
	"github.com/godwish/build-portal/internal/services"
	"github.com/godwish/build-portal/internal/storage"
)

func main() {
	cfg := config.GetConfig()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	store, err := storage.NewArtifactStore(storage.StoreConfig{
		DataDir:      cfg.DataDir,
		PublicPrefix: "/builds",
	})
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to initialize artifact store")
	}

	repo := repository.NewBuildRepository(db)
	buildService := services.NewBuildService(repo, store, log)
	ingestService := services.NewIngestService(repo, store, log)

	addr := ":" + cfg.Port
	srv := server.NewServer(addr, cfg)
	routes.RegisterRoutes(srv, routes.Deps{
		Builds:          buildService,
		Ingest:          ingestService,
		AppTitle:        cfg.AppTitle,
		UploadDir:       cfg.UploadDir,
		TrustedNetworks: cfg.TrustedNetworks,
	})

	log.Info().Str("addr", addr).Msg("starting build portal")
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
