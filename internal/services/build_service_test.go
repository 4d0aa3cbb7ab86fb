package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godwish/build-portal/internal/models"
	"github.com/godwish/build-portal/internal/repository"
)

func seedAndroidBuilds(t *testing.T, repo repository.BuildRepository, n int) []models.Build {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	created := make([]models.Build, 0, n)
	for i := 0; i < n; i++ {
		b := &models.Build{
			Type:       models.BuildTypeAndroid,
			Version:    "1.0." + time.Duration(i).String(),
			UploadTime: base.Add(time.Duration(i) * time.Second),
			ServePath:  "/builds/android/seed-" + time.Duration(i).String() + ".apk",
		}
		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
		created = append(created, *b)
	}
	return created
}

func TestListEmptyRegistry(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewBuildService(repo, store, zerolog.Nop())

	result, err := svc.List(context.Background(), models.BuildTypeWeb, 1)
	require.NoError(t, err)

	assert.NotNil(t, result.Builds)
	assert.Empty(t, result.Builds)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, result.TotalPages)
	assert.Equal(t, int64(0), result.TotalBuilds)
}

func TestListPagination(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewBuildService(repo, store, zerolog.Nop())
	seedAndroidBuilds(t, repo, 21)

	result, err := svc.List(context.Background(), models.BuildTypeAndroid, 1)
	require.NoError(t, err)
	assert.Len(t, result.Builds, PageSize)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, int64(21), result.TotalBuilds)

	result, err = svc.List(context.Background(), models.BuildTypeAndroid, 2)
	require.NoError(t, err)
	assert.Len(t, result.Builds, 1)

	// A page past the end is empty, not an error, and keeps the totals.
	result, err = svc.List(context.Background(), models.BuildTypeAndroid, 9)
	require.NoError(t, err)
	assert.Empty(t, result.Builds)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, int64(21), result.TotalBuilds)
}

func TestListNormalizesPage(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewBuildService(repo, store, zerolog.Nop())
	seedAndroidBuilds(t, repo, 2)

	result, err := svc.List(context.Background(), models.BuildTypeAndroid, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Builds, 2)
}

func TestLatest(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewBuildService(repo, store, zerolog.Nop())

	_, err := svc.Latest(context.Background(), models.BuildTypeAndroid)
	assert.ErrorIs(t, err, ErrNotFound)

	created := seedAndroidBuilds(t, repo, 3)
	latest, err := svc.Latest(context.Background(), models.BuildTypeAndroid)
	require.NoError(t, err)
	assert.Equal(t, created[2].ID, latest.ID)
}

func TestDeleteRemovesArtifactAndRecord(t *testing.T) {
	repo, store, dataDir := newTestDeps(t)
	ingest := NewIngestService(repo, store, zerolog.Nop())
	svc := NewBuildService(repo, store, zerolog.Nop())

	temp := stageFile(t, t.TempDir(), "upload.apk", "apk-bytes")
	build, err := ingest.Ingest(context.Background(), models.BuildTypeAndroid, UploadInput{
		TempPath: temp,
		Version:  "1.2.0",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), models.BuildTypeAndroid, build.ID))

	_, err = os.Stat(filepath.Join(dataDir, "android", filepath.Base(build.ServePath)))
	assert.True(t, os.IsNotExist(err))

	_, err = svc.Latest(context.Background(), models.BuildTypeAndroid)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again reports not found; nothing is left to remove.
	assert.ErrorIs(t, svc.Delete(context.Background(), models.BuildTypeAndroid, build.ID), ErrNotFound)
}

func TestDeleteWebBuild(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	ingest := NewIngestService(repo, store, zerolog.Nop())
	svc := NewBuildService(repo, store, zerolog.Nop())

	temp := stageWebArchive(t, t.TempDir())
	build, err := ingest.Ingest(context.Background(), models.BuildTypeWeb, UploadInput{
		TempPath: temp,
		Version:  "0.9.0",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), models.BuildTypeWeb, build.ID))

	_, err = os.Stat(build.StoragePath)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteToleratesMissingArtifact(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewBuildService(repo, store, zerolog.Nop())

	// Record whose artifact never existed on disk.
	created := seedAndroidBuilds(t, repo, 1)
	require.NoError(t, svc.Delete(context.Background(), models.BuildTypeAndroid, created[0].ID))
}

func TestDeleteWrongTypeNotFound(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewBuildService(repo, store, zerolog.Nop())
	created := seedAndroidBuilds(t, repo, 1)

	assert.ErrorIs(t, svc.Delete(context.Background(), models.BuildTypeWeb, created[0].ID), ErrNotFound)
}
