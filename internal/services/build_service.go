package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/godwish/build-portal/internal/models"
	"github.com/godwish/build-portal/internal/repository"
	"github.com/godwish/build-portal/internal/storage"
)

// PageSize is the fixed listing window; it is not client-configurable.
const PageSize = 20

// ListResult represents one page of the registry for a build type.
type ListResult struct {
	Builds      []models.Build
	Page        int
	TotalPages  int
	TotalBuilds int64
}

// BuildService defines the read and delete operations over the registry and
// the artifact store.
type BuildService interface {
	List(ctx context.Context, t models.BuildType, page int) (*ListResult, error)
	Latest(ctx context.Context, t models.BuildType) (*models.Build, error)
	Delete(ctx context.Context, t models.BuildType, id uint) error
}

type buildService struct {
	repo  repository.BuildRepository
	store storage.ArtifactStore
	log   zerolog.Logger
}

func NewBuildService(repo repository.BuildRepository, store storage.ArtifactStore, log zerolog.Logger) BuildService {
	return &buildService{
		repo:  repo,
		store: store,
		log:   log,
	}
}

// List returns the requested page, newest first. A page past the end yields
// an empty slice with the correct totals.
func (s *buildService) List(ctx context.Context, t models.BuildType, page int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	builds, total, err := s.repo.ListByType(ctx, t, offset, PageSize)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	if builds == nil {
		builds = []models.Build{}
	}

	return &ListResult{
		Builds:      builds,
		Page:        page,
		TotalPages:  int((total + PageSize - 1) / PageSize),
		TotalBuilds: total,
	}, nil
}

func (s *buildService) Latest(ctx context.Context, t models.BuildType) (*models.Build, error) {
	build, err := s.repo.LatestByType(ctx, t)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Err: err}
	}
	return build, nil
}

// Delete removes the artifact first and the record second. When artifact
// removal fails unexpectedly the record is kept so the delete stays
// retryable; an absent artifact is tolerated.
func (s *buildService) Delete(ctx context.Context, t models.BuildType, id uint) error {
	build, err := s.repo.FindByID(ctx, t, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Err: err}
	}

	switch build.Type {
	case models.BuildTypeWeb:
		err = s.store.RemoveWebBuild(build.StoragePath)
	case models.BuildTypeAndroid:
		err = s.store.RemoveAndroidBuild(build.ServePath)
	}
	if err != nil {
		return &DeletionError{Err: err}
	}

	if err := s.repo.DeleteByID(ctx, build.ID); err != nil {
		return &PersistenceError{Err: err}
	}

	s.log.Info().
		Str("type", string(build.Type)).
		Uint("id", build.ID).
		Str("path", build.ServePath).
		Msg("build deleted")

	return nil
}
