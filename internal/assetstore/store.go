package assetstore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mediastore/internal/config"
	"mediastore/internal/logging"
	"mediastore/internal/media"
	"mediastore/internal/naming"
)

// Store provides file operations under one asset-class root.
type Store struct {
	root   string
	class  media.Class
	logger *slog.Logger
}

// New constructs a store for the given root directory and class label.
func New(root string, class media.Class, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		root:   root,
		class:  class,
		logger: logger.With(logging.String(logging.FieldComponent, "assetstore"), logging.String(logging.FieldClass, string(class))),
	}
}

// ForClass constructs the store for a class using the configured roots.
func ForClass(cfg *config.Config, class media.Class, logger *slog.Logger) *Store {
	root := cfg.Paths.PhotosDir
	if class == media.ClassVideos {
		root = cfg.Paths.VideosDir
	}
	return New(root, class, logger)
}

// Root returns the absolute root directory of this store.
func (s *Store) Root() string {
	return s.root
}

// Class returns the asset class this store manages.
func (s *Store) Class() media.Class {
	return s.class
}

// FolderPath resolves a folder token to its absolute directory path.
func (s *Store) FolderPath(folderToken string) string {
	return filepath.Join(s.root, folderToken)
}

// Abs resolves a root-relative file path to an absolute one.
func (s *Store) Abs(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}

// Rel converts an absolute path under the root back to the root-relative form
// stored in asset records.
func (s *Store) Rel(absPath string) (string, error) {
	rel, err := filepath.Rel(s.root, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q is outside root %q", absPath, s.root)
	}
	return filepath.ToSlash(rel), nil
}

// EnsureFolder returns the owner's existing folder token, creating the folder
// derived from the display name when none exists yet. Idempotent.
func (s *Store) EnsureFolder(ownerID, displayName string) (string, error) {
	token, found, err := s.ResolveFolder(ownerID)
	if err != nil {
		return "", err
	}
	if found {
		return token, nil
	}

	token = naming.EncodeFolder(ownerID, displayName)
	if err := os.MkdirAll(s.FolderPath(token), 0o755); err != nil {
		return "", media.Wrap(media.ErrIO, "assetstore", "ensure folder", fmt.Sprintf("create %s", token), err)
	}
	s.logger.Info("created owner folder",
		logging.String(logging.FieldOwnerID, ownerID),
		logging.String("folder", token),
	)
	return token, nil
}

// ResolveFolder scans the root's immediate children for the owner's folder.
// The scan is O(number of owners); renames are rare, so callers must not use
// this in hot paths.
func (s *Store) ResolveFolder(ownerID string) (string, bool, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, media.Wrap(media.ErrIO, "assetstore", "resolve folder", "read root", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if naming.MatchesOwner(entry.Name(), ownerID) {
			return entry.Name(), true, nil
		}
	}
	return "", false, nil
}

// DeleteFolderRecursive removes an owner folder and everything in it. A
// missing folder is a no-op so retries stay idempotent.
func (s *Store) DeleteFolderRecursive(folderToken string) error {
	path := s.FolderPath(folderToken)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return media.Wrap(media.ErrIO, "assetstore", "delete folder", folderToken, err)
	}
	s.logger.Info("deleted owner folder", logging.String("folder", folderToken))
	return nil
}

// WriteFile streams r into folderToken/name and returns the root-relative
// path and byte count.
func (s *Store) WriteFile(folderToken, name string, r io.Reader) (string, int64, error) {
	dir := s.FolderPath(folderToken)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, media.Wrap(media.ErrIO, "assetstore", "write file", "create folder", err)
	}
	target := filepath.Join(dir, name)
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, media.Wrap(media.ErrIO, "assetstore", "write file", name, err)
	}
	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return "", 0, media.Wrap(media.ErrIO, "assetstore", "write file", name, err)
	}
	return filepath.ToSlash(filepath.Join(folderToken, name)), written, nil
}

// RemoveFile deletes one root-relative file. Missing files are a no-op.
func (s *Store) RemoveFile(relPath string) error {
	if err := os.Remove(s.Abs(relPath)); err != nil && !os.IsNotExist(err) {
		return media.Wrap(media.ErrIO, "assetstore", "remove file", relPath, err)
	}
	return nil
}

// FileExists reports whether a root-relative path resolves to a regular file.
func (s *Store) FileExists(relPath string) bool {
	info, err := os.Stat(s.Abs(relPath))
	return err == nil && info.Mode().IsRegular()
}

// FileInfo describes one stored file.
type FileInfo struct {
	Name string
	Rel  string
	Size int64
}

// ListFiles enumerates the regular files in one owner folder.
func (s *Store) ListFiles(folderToken string) ([]FileInfo, error) {
	entries, err := os.ReadDir(s.FolderPath(folderToken))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, media.Wrap(media.ErrIO, "assetstore", "list files", folderToken, err)
	}
	var out []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, FileInfo{
			Name: entry.Name(),
			Rel:  filepath.ToSlash(filepath.Join(folderToken, entry.Name())),
			Size: info.Size(),
		})
	}
	return out, nil
}

// ListOwnerFolders enumerates the folder tokens directly under the root.
func (s *Store) ListOwnerFolders() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, media.Wrap(media.ErrIO, "assetstore", "list folders", "read root", err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			out = append(out, entry.Name())
		}
	}
	return out, nil
}
