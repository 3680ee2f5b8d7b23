package app

import (
	log "github.com/sirupsen/logrus"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
	"socialfeed/internal/storage"
)

// App wires the dependency graph: database, object storage, repositories,
// services.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize MinIO")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
