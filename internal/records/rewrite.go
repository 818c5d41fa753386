package records

import (
	"context"
	"fmt"
	"strings"

	"mediastore/internal/media"
)

// RowError pairs a record id with its rewrite error.
type RowError struct {
	RecordID string
	Err      error
}

// RewriteResult aggregates the outcome of a folder-path rewrite. A non-empty
// Errors slice means the rewrite is incomplete; updated rows stay updated.
type RewriteResult struct {
	Updated   int
	Unchanged int
	Errors    []RowError
}

// RewriteFolderPaths replaces oldToken with newToken in every variant path of
// the owner's records of the given kind. Rows whose paths do not contain the
// token are left untouched, and a single row's failure does not block the
// rest. Filesystem moves are not transactional, so consistency is pursued
// per row and divergences surface via reconciliation.
func (s *Store) RewriteFolderPaths(ctx context.Context, ownerID string, kind media.Kind, oldToken, newToken string) (RewriteResult, error) {
	result := RewriteResult{}
	if oldToken == "" || newToken == "" {
		return result, fmt.Errorf("rewrite folder paths: tokens must be non-empty")
	}
	if oldToken == newToken {
		return result, nil
	}

	rows, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return result, fmt.Errorf("rewrite folder paths: %w", err)
	}

	for _, record := range rows {
		if record.Kind != kind {
			continue
		}
		changed := false
		for _, vp := range record.VariantPaths() {
			if strings.Contains(vp.Path, oldToken) {
				record.setVariant(vp.Variant, strings.ReplaceAll(vp.Path, oldToken, newToken))
				changed = true
			}
		}
		if !changed {
			result.Unchanged++
			continue
		}
		if err := s.updatePaths(ctx, record); err != nil {
			result.Errors = append(result.Errors, RowError{RecordID: record.ID, Err: err})
			continue
		}
		result.Updated++
	}
	return result, nil
}

func (s *Store) updatePaths(ctx context.Context, record *AssetRecord) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE asset_records SET
            original_path = ?, thumbnail_path = ?, medium_path = ?,
            large_path = ?, video_path = ?, cover_path = ?
         WHERE id = ?`,
		nullableString(record.OriginalPath),
		nullableString(record.ThumbnailPath),
		nullableString(record.MediumPath),
		nullableString(record.LargePath),
		nullableString(record.VideoPath),
		nullableString(record.CoverPath),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update variant paths: %w", err)
	}
	return nil
}
