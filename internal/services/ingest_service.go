package services

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/godwish/build-portal/internal/models"
	"github.com/godwish/build-portal/internal/repository"
	"github.com/godwish/build-portal/internal/storage"
	"github.com/godwish/build-portal/internal/utils"
)

// UploadInput carries one received upload through the pipeline. TempPath
// points at the staged upload file; the pipeline removes it on every exit
// path.
type UploadInput struct {
	TempPath    string
	Version     string
	Description string
}

// IngestService orchestrates validated upload, artifact placement and
// registry insertion.
type IngestService interface {
	Ingest(ctx context.Context, t models.BuildType, in UploadInput) (*models.Build, error)
}

type ingestService struct {
	repo  repository.BuildRepository
	store storage.ArtifactStore
	log   zerolog.Logger
}

func NewIngestService(repo repository.BuildRepository, store storage.ArtifactStore, log zerolog.Logger) IngestService {
	return &ingestService{
		repo:  repo,
		store: store,
		log:   log,
	}
}

// Ingest places the artifact and records it in the registry. When the insert
// fails after placement, the just-placed artifact is removed again so the
// store and the registry stay in step.
func (s *ingestService) Ingest(ctx context.Context, t models.BuildType, in UploadInput) (*models.Build, error) {
	// The android placement renames the temp file away, which makes this
	// removal a no-op on that path.
	defer os.Remove(in.TempPath)

	if in.TempPath == "" {
		return nil, &ValidationError{Msg: "No file uploaded"}
	}

	checksum, size, err := utils.HashFile(in.TempPath)
	if err != nil {
		return nil, &storage.StorageError{Op: "read", Err: err}
	}

	build := &models.Build{
		Type:        t,
		Version:     in.Version,
		Description: in.Description,
		SizeBytes:   size,
		Checksum:    checksum,
	}

	switch t {
	case models.BuildTypeWeb:
		servePath, storagePath, err := s.store.PlaceWebBuild(in.TempPath)
		if err != nil {
			return nil, err
		}
		build.ServePath = servePath
		build.StoragePath = storagePath
	case models.BuildTypeAndroid:
		servePath, err := s.store.PlaceAndroidBuild(in.TempPath)
		if err != nil {
			return nil, err
		}
		build.ServePath = servePath
	default:
		return nil, &ValidationError{Msg: "Invalid build type"}
	}

	created, err := s.repo.Create(ctx, build)
	if err != nil {
		s.rollbackArtifact(build)
		return nil, &PersistenceError{Err: err}
	}

	s.log.Info().
		Str("type", string(t)).
		Str("version", created.Version).
		Str("path", created.ServePath).
		Int64("size", created.SizeBytes).
		Msg("build ingested")

	return created, nil
}

// rollbackArtifact compensates for a failed registry insert by removing the
// already-placed artifact.
func (s *ingestService) rollbackArtifact(build *models.Build) {
	var err error
	switch build.Type {
	case models.BuildTypeWeb:
		err = s.store.RemoveWebBuild(build.StoragePath)
	case models.BuildTypeAndroid:
		err = s.store.RemoveAndroidBuild(build.ServePath)
	}
	if err != nil {
		s.log.Error().Err(err).
			Str("path", build.ServePath).
			Msg("orphaned artifact left behind after failed insert")
	}
}
