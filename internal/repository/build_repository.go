package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/godwish/build-portal/internal/models"
)

// BuildRepository defines the interface for build persistence operations
type BuildRepository interface {
	Create(ctx context.Context, build *models.Build) (*models.Build, error)
	ListByType(ctx context.Context, t models.BuildType, offset, limit int) ([]models.Build, int64, error)
	LatestByType(ctx context.Context, t models.BuildType) (*models.Build, error)
	FindByID(ctx context.Context, t models.BuildType, id uint) (*models.Build, error)
	DeleteByID(ctx context.Context, id uint) error
}

type buildRepository struct {
	db *gorm.DB
}

func NewBuildRepository(db *gorm.DB) BuildRepository {
	return &buildRepository{
		db: db,
	}
}

// Create persists a new build and returns the created record. The upload
// time is assigned server-side unless the caller already set one.
func (r *buildRepository) Create(ctx context.Context, build *models.Build) (*models.Build, error) {
	if build.UploadTime.IsZero() {
		build.UploadTime = time.Now().UTC()
	}
	// GORM's Create method updates the 'build' pointer with DB-generated fields
	err := r.db.WithContext(ctx).Create(build).Error
	if err != nil {
		return nil, err
	}
	return build, nil
}

// ListByType returns one window of builds for the type, newest first, plus
// the unwindowed total count.
func (r *buildRepository) ListByType(ctx context.Context, t models.BuildType, offset, limit int) ([]models.Build, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Build{}).Where("type = ?", t).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var builds []models.Build
	err = r.db.WithContext(ctx).
		Where("type = ?", t).
		Order("upload_time DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&builds).Error
	if err != nil {
		return nil, 0, err
	}
	return builds, total, nil
}

// LatestByType returns the single most recent build for the type.
// gorm.ErrRecordNotFound signals an empty registry for the type.
func (r *buildRepository) LatestByType(ctx context.Context, t models.BuildType) (*models.Build, error) {
	var build models.Build
	err := r.db.WithContext(ctx).
		Where("type = ?", t).
		Order("upload_time DESC, id DESC").
		First(&build).Error
	if err != nil {
		return nil, err
	}
	return &build, nil
}

func (r *buildRepository) FindByID(ctx context.Context, t models.BuildType, id uint) (*models.Build, error) {
	var build models.Build
	err := r.db.WithContext(ctx).First(&build, "id = ? AND type = ?", id, t).Error
	if err != nil {
		return nil, err
	}
	return &build, nil
}

// DeleteByID removes at most one record. A missing id is not an error.
func (r *buildRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Build{}, "id = ?", id).Error
}
