package storage

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	webDir     = "web"
	androidDir = "android"

	// Godot web exports are expected to ship their entry point as index.html.
	webEntryPoint = "index.html"
)

// ArtifactStore defines the interface for durable placement and removal of
// build bytes on the local filesystem. Artifacts are keyed by server-generated
// identifiers so that concurrent uploads of the same declared version never
// collide.
type ArtifactStore interface {
	PlaceWebBuild(archivePath string) (servePath, storagePath string, err error)
	PlaceAndroidBuild(tempPath string) (servePath string, err error)
	RemoveWebBuild(storagePath string) error
	RemoveAndroidBuild(servePath string) error
}

type fsStore struct {
	dataDir      string
	publicPrefix string
}

type StoreConfig struct {
	// DataDir is the root of the artifact area, mounted read-only at
	// PublicPrefix by the HTTP server.
	DataDir      string
	PublicPrefix string
}

func NewArtifactStore(cfg StoreConfig) (ArtifactStore, error) {
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = "/builds"
	}
	for _, sub := range []string{webDir, androidDir} {
		if err := os.MkdirAll(filepath.Join(cfg.DataDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create artifact directory: %w", err)
		}
	}
	return &fsStore{
		dataDir:      cfg.DataDir,
		publicPrefix: cfg.PublicPrefix,
	}, nil
}

// PlaceWebBuild extracts the archive into a freshly created directory named
// by a new random identifier. Partial output is removed before the error is
// returned.
func (s *fsStore) PlaceWebBuild(archivePath string) (string, string, error) {
	id := uuid.NewString()
	dir := filepath.Join(s.dataDir, webDir, id)

	if err := extractZip(archivePath, dir); err != nil {
		os.RemoveAll(dir)
		return "", "", &ExtractionError{Err: err}
	}

	storagePath, err := filepath.Abs(dir)
	if err != nil {
		os.RemoveAll(dir)
		return "", "", &StorageError{Op: "resolve", Err: err}
	}

	servePath := path.Join(s.publicPrefix, webDir, id, webEntryPoint)
	return servePath, storagePath, nil
}

// PlaceAndroidBuild moves the uploaded file into the android artifact
// directory under a new random identifier. The caller keeps ownership of the
// temporary file when the move fails.
func (s *fsStore) PlaceAndroidBuild(tempPath string) (string, error) {
	fileName := uuid.NewString() + ".apk"
	target := filepath.Join(s.dataDir, androidDir, fileName)

	if err := os.Rename(tempPath, target); err != nil {
		return "", &StorageError{Op: "move", Err: err}
	}

	return path.Join(s.publicPrefix, androidDir, fileName), nil
}

// RemoveWebBuild recursively deletes the extracted directory. A missing path
// is a no-op.
func (s *fsStore) RemoveWebBuild(storagePath string) error {
	if storagePath == "" {
		return nil
	}
	if err := os.RemoveAll(storagePath); err != nil {
		return &StorageError{Op: "remove", Err: err}
	}
	return nil
}

// RemoveAndroidBuild resolves the serve path back to its on-disk location and
// deletes the single file. A missing file is a no-op.
func (s *fsStore) RemoveAndroidBuild(servePath string) error {
	rel := strings.TrimPrefix(servePath, s.publicPrefix)
	rel = strings.TrimPrefix(rel, "/")
	target := filepath.Join(s.dataDir, filepath.FromSlash(rel))

	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &StorageError{Op: "remove", Err: err}
	}
	return nil
}

// extractZip unpacks the archive into destDir, rejecting entries whose names
// would escape the destination.
func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer r.Close()

	cleanDest := filepath.Clean(destDir)
	for _, f := range r.File {
		target := filepath.Join(cleanDest, filepath.FromSlash(f.Name))
		if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm()|0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
