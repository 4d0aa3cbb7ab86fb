package services

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godwish/build-portal/internal/database"
	"github.com/godwish/build-portal/internal/models"
	"github.com/godwish/build-portal/internal/repository"
	"github.com/godwish/build-portal/internal/storage"
)

func newTestDeps(t *testing.T) (repository.BuildRepository, storage.ArtifactStore, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := database.Connect(filepath.Join(dir, "builds.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	dataDir := filepath.Join(dir, "builds")
	store, err := storage.NewArtifactStore(storage.StoreConfig{DataDir: dataDir})
	require.NoError(t, err)

	return repository.NewBuildRepository(db), store, dataDir
}

func stageWebArchive(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "upload.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("index.html")
	require.NoError(t, err)
	_, err = fw.Write([]byte("<html>game</html>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func stageFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestWebBuild(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewIngestService(repo, store, zerolog.Nop())
	temp := stageWebArchive(t, t.TempDir())

	build, err := svc.Ingest(context.Background(), models.BuildTypeWeb, UploadInput{
		TempPath:    temp,
		Version:     "0.4.1",
		Description: "first playable",
	})
	require.NoError(t, err)

	assert.NotZero(t, build.ID)
	assert.Equal(t, models.BuildTypeWeb, build.Type)
	assert.Equal(t, "0.4.1", build.Version)
	assert.Contains(t, build.ServePath, "/builds/web/")
	assert.NotEmpty(t, build.StoragePath)
	assert.NotEmpty(t, build.Checksum)
	assert.Positive(t, build.SizeBytes)

	// The extracted entry point is on disk and the temp upload is gone.
	_, err = os.Stat(filepath.Join(build.StoragePath, "index.html"))
	assert.NoError(t, err)
	_, err = os.Stat(temp)
	assert.True(t, os.IsNotExist(err))

	latest, err := repo.LatestByType(context.Background(), models.BuildTypeWeb)
	require.NoError(t, err)
	assert.Equal(t, build.ID, latest.ID)
}

func TestIngestAndroidBuild(t *testing.T) {
	repo, store, dataDir := newTestDeps(t)
	svc := NewIngestService(repo, store, zerolog.Nop())
	temp := stageFile(t, t.TempDir(), "upload.apk", "apk-bytes")

	build, err := svc.Ingest(context.Background(), models.BuildTypeAndroid, UploadInput{
		TempPath: temp,
		Version:  "1.2.0",
	})
	require.NoError(t, err)

	assert.Contains(t, build.ServePath, "/builds/android/")
	assert.Empty(t, build.StoragePath)

	_, err = os.Stat(filepath.Join(dataDir, "android", filepath.Base(build.ServePath)))
	assert.NoError(t, err)
}

func TestIngestCorruptArchive(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewIngestService(repo, store, zerolog.Nop())
	temp := stageFile(t, t.TempDir(), "upload.zip", "not a zip")

	_, err := svc.Ingest(context.Background(), models.BuildTypeWeb, UploadInput{TempPath: temp})
	var extractionErr *storage.ExtractionError
	require.ErrorAs(t, err, &extractionErr)

	// No registry record may exist without a placed artifact.
	_, err = repo.LatestByType(context.Background(), models.BuildTypeWeb)
	assert.Error(t, err)

	_, err = os.Stat(temp)
	assert.True(t, os.IsNotExist(err), "temp upload must be removed on failure")
}

func TestIngestUnsupportedType(t *testing.T) {
	repo, store, _ := newTestDeps(t)
	svc := NewIngestService(repo, store, zerolog.Nop())
	temp := stageFile(t, t.TempDir(), "upload.ipa", "ipa-bytes")

	_, err := svc.Ingest(context.Background(), models.BuildType("ios"), UploadInput{TempPath: temp})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, *models.Build) (*models.Build, error) {
	return nil, errors.New("insert failed")
}

func (failingRepo) ListByType(context.Context, models.BuildType, int, int) ([]models.Build, int64, error) {
	return nil, 0, errors.New("unavailable")
}

func (failingRepo) LatestByType(context.Context, models.BuildType) (*models.Build, error) {
	return nil, errors.New("unavailable")
}

func (failingRepo) FindByID(context.Context, models.BuildType, uint) (*models.Build, error) {
	return nil, errors.New("unavailable")
}

func (failingRepo) DeleteByID(context.Context, uint) error {
	return errors.New("unavailable")
}

func TestIngestRemovesArtifactWhenInsertFails(t *testing.T) {
	_, store, dataDir := newTestDeps(t)
	svc := NewIngestService(failingRepo{}, store, zerolog.Nop())
	temp := stageFile(t, t.TempDir(), "upload.apk", "apk-bytes")

	_, err := svc.Ingest(context.Background(), models.BuildTypeAndroid, UploadInput{TempPath: temp})
	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)

	entries, err := os.ReadDir(filepath.Join(dataDir, "android"))
	require.NoError(t, err)
	assert.Empty(t, entries, "placed artifact must be rolled back when the insert fails")
}
