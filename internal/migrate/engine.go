package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mediastore/internal/config"
	"mediastore/internal/fileutil"
	"mediastore/internal/logging"
	"mediastore/internal/media"
)

// FileStatus tracks one file's progress through the copy-verify-delete steps.
type FileStatus string

const (
	StatusPending  FileStatus = "pending"
	StatusCopied   FileStatus = "copied"
	StatusVerified FileStatus = "verified"
	StatusDeleted  FileStatus = "deleted"
	StatusFailed   FileStatus = "failed"
)

// FileStep records the per-file outcome of a migration.
type FileStep struct {
	Name   string
	Status FileStatus
	Err    error
}

// Result aggregates a migration run. Failed > 0 means the migration is
// incomplete and the source directory legitimately retains the unmigrated
// files until retried.
type Result struct {
	Succeeded int
	Failed    int
	Steps     []FileStep
}

// Complete reports whether every file reached the deleted state.
func (r Result) Complete() bool {
	return r.Failed == 0
}

// Engine performs folder migrations.
type Engine struct {
	checksum bool
	logger   *slog.Logger
}

// New constructs an engine honoring the configured verification mode.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	checksum := true
	if cfg != nil {
		checksum = cfg.Migration.Checksum
	}
	return &Engine{
		checksum: checksum,
		logger:   logger.With(logging.String(logging.FieldComponent, "migrate")),
	}
}

// Run migrates every file from sourceDir into targetDir. The target must not
// already exist as a non-empty directory; silently merging two owners' files
// is never acceptable, so that case fails with a conflict before any file is
// touched.
func (e *Engine) Run(ctx context.Context, sourceDir, targetDir string) (Result, error) {
	result := Result{}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return result, media.Wrap(media.ErrIO, "migrate", "read source", sourceDir, err)
	}

	if info, err := os.Stat(targetDir); err == nil {
		if !info.IsDir() {
			return result, media.Wrap(media.ErrConflict, "migrate", "check target", fmt.Sprintf("%s exists and is not a directory", targetDir), nil)
		}
		empty, err := fileutil.DirEmpty(targetDir)
		if err != nil {
			return result, media.Wrap(media.ErrIO, "migrate", "check target", targetDir, err)
		}
		if !empty {
			return result, media.Wrap(media.ErrConflict, "migrate", "check target", fmt.Sprintf("%s already contains files", targetDir), nil)
		}
	} else if !os.IsNotExist(err) {
		return result, media.Wrap(media.ErrIO, "migrate", "check target", targetDir, err)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return result, media.Wrap(media.ErrIO, "migrate", "create target", targetDir, err)
	}

	logger := logging.WithContext(ctx, e.logger)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		step := e.migrateFile(sourceDir, targetDir, entry.Name())
		result.Steps = append(result.Steps, step)
		if step.Status == StatusDeleted {
			result.Succeeded++
		} else {
			result.Failed++
			logger.Warn("file migration failed",
				logging.String("file", step.Name),
				logging.String("status", string(step.Status)),
				logging.Error(step.Err),
			)
		}
	}

	if result.Failed == 0 {
		// Cosmetic cleanup: the empty source directory's absence is not
		// load-bearing for any lookup.
		if empty, err := fileutil.DirEmpty(sourceDir); err == nil && empty {
			_ = os.Remove(sourceDir)
		}
	}

	logger.Info("migration finished",
		logging.String("source", sourceDir),
		logging.String("target", targetDir),
		logging.Int("succeeded", result.Succeeded),
		logging.Int("failed", result.Failed),
	)
	return result, nil
}

// migrateFile runs the copy-verify-delete steps for a single file. Files are
// independent; one failure never blocks the rest.
func (e *Engine) migrateFile(sourceDir, targetDir, name string) FileStep {
	step := FileStep{Name: name, Status: StatusPending}
	src := filepath.Join(sourceDir, name)
	dst := filepath.Join(targetDir, name)

	if e.checksum {
		if err := fileutil.CopyFileVerified(src, dst); err != nil {
			step.Status = StatusFailed
			step.Err = err
			return step
		}
		// Hash and size already matched during the copy.
		step.Status = StatusVerified
	} else {
		if err := fileutil.CopyFile(src, dst); err != nil {
			step.Status = StatusFailed
			step.Err = err
			return step
		}
		step.Status = StatusCopied
		if _, err := os.Stat(dst); err != nil {
			step.Status = StatusFailed
			step.Err = fmt.Errorf("verify copy: %w", err)
			return step
		}
		step.Status = StatusVerified
	}

	if err := os.Remove(src); err != nil {
		step.Status = StatusFailed
		step.Err = fmt.Errorf("delete source after verify: %w", err)
		return step
	}
	step.Status = StatusDeleted
	return step
}
