package rename

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"mediastore/internal/assetstore"
	"mediastore/internal/config"
	"mediastore/internal/logging"
	"mediastore/internal/media"
	"mediastore/internal/migrate"
	"mediastore/internal/naming"
	"mediastore/internal/records"
)

// Outcome summarizes what a rename did to one class root.
type Outcome string

const (
	// OutcomeNoAssets means the owner had no folder under the root.
	OutcomeNoAssets Outcome = "no-assets"
	// OutcomeUnchanged means the new display name derives the token the
	// folder already carries.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeConflict means the target folder already exists with content;
	// nothing was moved.
	OutcomeConflict Outcome = "conflict"
	// OutcomePartial means migration or rewrite finished with per-item
	// failures. The detail lists exactly what is left inconsistent.
	OutcomePartial Outcome = "partial"
	// OutcomeComplete means every file moved and every record row now
	// references the new token.
	OutcomeComplete Outcome = "complete"
)

// ClassResult carries the per-root detail of one rename.
type ClassResult struct {
	Class     media.Class
	Outcome   Outcome
	OldToken  string
	NewToken  string
	Migration migrate.Result
	Rewrite   records.RewriteResult
	Err       error
}

// Report aggregates the class results of one rename run.
type Report struct {
	OwnerID string
	Classes []ClassResult
}

// Outcome reduces the class results to the worst observed state.
func (r Report) Outcome() Outcome {
	rank := map[Outcome]int{
		OutcomeNoAssets:  0,
		OutcomeUnchanged: 1,
		OutcomeComplete:  2,
		OutcomePartial:   3,
		OutcomeConflict:  4,
	}
	worst := OutcomeNoAssets
	for _, class := range r.Classes {
		if rank[class.Outcome] > rank[worst] {
			worst = class.Outcome
		}
	}
	return worst
}

// Coordinator serializes and executes owner renames.
type Coordinator struct {
	cfg    *config.Config
	index  *records.Store
	engine *migrate.Engine
	logger *slog.Logger
}

// New constructs a coordinator over the configured roots and record index.
func New(cfg *config.Config, index *records.Store, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		cfg:    cfg,
		index:  index,
		engine: migrate.New(cfg, logger),
		logger: logger.With(logging.String(logging.FieldComponent, "rename")),
	}
}

// Rename migrates the owner's folders to tokens derived from newDisplayName
// and rewrites the owner's record paths. A second rename for the same owner
// while one is in flight fails with the busy sentinel; the caller retries.
func (c *Coordinator) Rename(ctx context.Context, ownerID, newDisplayName string) (Report, error) {
	report := Report{OwnerID: ownerID}
	if strings.TrimSpace(ownerID) == "" {
		return report, media.Wrap(media.ErrValidation, "rename", "rename", "owner id required", nil)
	}

	if err := os.MkdirAll(c.cfg.Paths.LockDir, 0o755); err != nil {
		return report, media.Wrap(media.ErrIO, "rename", "lock", "create lock directory", err)
	}
	lock := flock.New(filepath.Join(c.cfg.Paths.LockDir, "rename-"+ownerID+".lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return report, media.Wrap(media.ErrIO, "rename", "lock", "acquire owner lock", err)
	}
	if !ok {
		return report, media.Wrap(media.ErrBusy, "rename", "lock", "another rename is in flight for owner "+ownerID, nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.logger.Warn("failed to release owner lock",
				logging.String(logging.FieldOwnerID, ownerID),
				logging.Error(err),
			)
		}
	}()

	for _, class := range []media.Class{media.ClassPhotos, media.ClassVideos} {
		store := assetstore.ForClass(c.cfg, class, c.logger)
		report.Classes = append(report.Classes, c.renameClass(ctx, store, ownerID, newDisplayName))
	}

	c.logger.Info("rename finished",
		logging.String(logging.FieldOwnerID, ownerID),
		logging.String("outcome", string(report.Outcome())),
	)
	return report, nil
}

// renameClass runs the resolve, compute, guard, migrate, and rewrite steps
// for one class root. Failures never roll back the other step; the result
// records exactly how far the rename got.
//
// The target-folder guard distinguishes occupancy from existence: an empty
// directory at the new token is claimed and filled, while a directory that
// already holds files yields OutcomeConflict and leaves the source untouched.
func (c *Coordinator) renameClass(ctx context.Context, store *assetstore.Store, ownerID, newDisplayName string) ClassResult {
	result := ClassResult{Class: store.Class()}

	oldToken, found, err := store.ResolveFolder(ownerID)
	if err != nil {
		result.Outcome = OutcomePartial
		result.Err = err
		return result
	}
	if !found {
		result.Outcome = OutcomeNoAssets
		return result
	}
	result.OldToken = oldToken

	newToken := naming.EncodeFolder(ownerID, newDisplayName)
	result.NewToken = newToken
	if newToken == oldToken {
		result.Outcome = OutcomeUnchanged
		return result
	}

	migration, err := c.engine.Run(ctx, store.FolderPath(oldToken), store.FolderPath(newToken))
	result.Migration = migration
	if err != nil {
		result.Err = err
		if errors.Is(err, media.ErrConflict) {
			result.Outcome = OutcomeConflict
		} else {
			result.Outcome = OutcomePartial
		}
		return result
	}

	rewrite, err := c.index.RewriteFolderPaths(ctx, ownerID, media.KindFor(store.Class()), oldToken, newToken)
	result.Rewrite = rewrite
	if err != nil {
		result.Err = err
		result.Outcome = OutcomePartial
		return result
	}

	if migration.Complete() && len(rewrite.Errors) == 0 {
		result.Outcome = OutcomeComplete
	} else {
		result.Outcome = OutcomePartial
	}
	return result
}
