package reconcile

import (
	"context"
	"log/slog"
	"os"

	"mediastore/internal/assetstore"
	"mediastore/internal/config"
	"mediastore/internal/logging"
	"mediastore/internal/media"
	"mediastore/internal/records"
)

// ReasonNoOwnerReference annotates a file on disk that no record points at.
const ReasonNoOwnerReference = "no-owner-reference"

// Orphan is a file under a class root that no record references.
type Orphan struct {
	Path   string
	Class  media.Class
	Size   int64
	Reason string
}

// MissingFile is a record with at least one variant path that does not
// resolve to a file. Repair needs a human decision, so these are reported
// and never auto-fixed.
type MissingFile struct {
	RecordID string
	Paths    []string
}

// Report is the outcome of one scan.
type Report struct {
	Class        media.Class
	FilesScanned int
	Orphans      []Orphan
	MissingFiles []MissingFile
}

// Clean reports whether the scan found no discrepancies.
func (r Report) Clean() bool {
	return len(r.Orphans) == 0 && len(r.MissingFiles) == 0
}

// CleanupError pairs a path with the error that kept it on disk.
type CleanupError struct {
	Path  string
	Error error
}

// CleanupResult summarizes a destructive cleanup pass.
type CleanupResult struct {
	Removed    []string
	BytesFreed int64
	Errors     []CleanupError
}

// Scanner reconciles asset-class roots against the record index.
type Scanner struct {
	cfg    *config.Config
	index  *records.Store
	logger *slog.Logger
}

// New constructs a scanner over the configured roots and record index.
func New(cfg *config.Config, index *records.Store, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{
		cfg:    cfg,
		index:  index,
		logger: logger.With(logging.String(logging.FieldComponent, "reconcile")),
	}
}

// Scan walks one class root and computes the two-way difference against the
// records of that class. It never mutates anything.
func (s *Scanner) Scan(ctx context.Context, class media.Class) (Report, error) {
	report := Report{Class: class}
	store := assetstore.ForClass(s.cfg, class, s.logger)

	referenced, missing, err := s.collectRecordPaths(ctx, store, class)
	if err != nil {
		return report, err
	}
	report.MissingFiles = missing

	folders, err := store.ListOwnerFolders()
	if err != nil {
		return report, err
	}
	for _, folder := range folders {
		files, err := store.ListFiles(folder)
		if err != nil {
			return report, err
		}
		for _, file := range files {
			report.FilesScanned++
			if referenced[file.Rel] {
				continue
			}
			report.Orphans = append(report.Orphans, Orphan{
				Path:   file.Rel,
				Class:  class,
				Size:   file.Size,
				Reason: ReasonNoOwnerReference,
			})
		}
	}

	s.logger.Info("scan finished",
		logging.String(logging.FieldClass, string(class)),
		logging.Int("files", report.FilesScanned),
		logging.Int("orphans", len(report.Orphans)),
		logging.Int("missing", len(report.MissingFiles)),
	)
	return report, nil
}

// collectRecordPaths builds the set of every variant path of every record in
// the class, plus the records whose paths no longer resolve.
func (s *Scanner) collectRecordPaths(ctx context.Context, store *assetstore.Store, class media.Class) (map[string]bool, []MissingFile, error) {
	assets, err := s.index.ListByKind(ctx, media.KindFor(class))
	if err != nil {
		return nil, nil, err
	}

	referenced := make(map[string]bool)
	var missing []MissingFile
	for _, record := range assets {
		var gone []string
		for _, vp := range record.VariantPaths() {
			referenced[vp.Path] = true
			if !store.FileExists(vp.Path) {
				gone = append(gone, vp.Path)
			}
		}
		if len(gone) > 0 {
			missing = append(missing, MissingFile{RecordID: record.ID, Paths: gone})
		}
	}
	return referenced, missing, nil
}

// Cleanup deletes the caller-supplied orphan paths and reports the bytes
// freed. Paths are root-relative; anything resolving outside the class root
// is recorded as an error and left alone.
func (s *Scanner) Cleanup(ctx context.Context, class media.Class, paths []string) CleanupResult {
	result := CleanupResult{}
	store := assetstore.ForClass(s.cfg, class, s.logger)

	for _, rel := range paths {
		abs := store.Abs(rel)
		if _, err := store.Rel(abs); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: rel, Error: err})
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: rel, Error: err})
			continue
		}
		if err := os.Remove(abs); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: rel, Error: err})
			s.logger.Warn("failed to remove orphaned file",
				logging.String("path", rel),
				logging.Error(err),
			)
			continue
		}
		result.Removed = append(result.Removed, rel)
		result.BytesFreed += info.Size()
		s.logger.Info("removed orphaned file",
			logging.String("path", rel),
			logging.Int64("bytes", info.Size()),
		)
	}
	return result
}
