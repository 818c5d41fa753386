package records

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mediastore/internal/media"
)

const recordColumns = `id, owner_id, kind, original_path, thumbnail_path, medium_path,
    large_path, video_path, cover_path, duration_seconds, width, height,
    size_bytes, is_primary, created_at`

// Create inserts a new asset record. A missing ID or CreatedAt is assigned.
func (s *Store) Create(ctx context.Context, record *AssetRecord) error {
	if record.OwnerID == "" {
		return fmt.Errorf("create record: owner id required")
	}
	if record.Kind != media.KindImage && record.Kind != media.KindVideo {
		return fmt.Errorf("create record: unknown kind %q", record.Kind)
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO asset_records (`+recordColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.OwnerID,
		string(record.Kind),
		nullableString(record.OriginalPath),
		nullableString(record.ThumbnailPath),
		nullableString(record.MediumPath),
		nullableString(record.LargePath),
		nullableString(record.VideoPath),
		nullableString(record.CoverPath),
		record.DurationSeconds,
		record.Width,
		record.Height,
		record.SizeBytes,
		boolToInt(record.IsPrimary),
		record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert asset record: %w", err)
	}
	return nil
}

// GetByID fetches one record or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (*AssetRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM asset_records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get asset record: %w", err)
	}
	return record, nil
}

// ListByOwner returns every record belonging to an owner, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]*AssetRecord, error) {
	return s.list(ctx,
		`SELECT `+recordColumns+` FROM asset_records WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID)
}

// ListByKind returns every record of one asset kind across all owners.
func (s *Store) ListByKind(ctx context.Context, kind media.Kind) ([]*AssetRecord, error) {
	return s.list(ctx,
		`SELECT `+recordColumns+` FROM asset_records WHERE kind = ? ORDER BY created_at DESC`,
		string(kind))
}

// Delete removes a record by id. Deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM asset_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete asset record: %w", err)
	}
	return nil
}

// SetPrimary marks one record as the owner's primary asset and clears the
// flag on the owner's other records. The single-primary invariant is the
// collaborator layer's; the engine itself never assumes it holds.
func (s *Store) SetPrimary(ctx context.Context, ownerID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set-primary tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE asset_records SET is_primary = 0 WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("clear primary flags: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE asset_records SET is_primary = 1 WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("set primary flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set primary rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*AssetRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query asset records: %w", err)
	}
	defer rows.Close()

	var out []*AssetRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset record: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset records: %w", err)
	}
	return out, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*AssetRecord, error) {
	var (
		id              string
		ownerID         string
		kindStr         string
		originalPath    sql.NullString
		thumbnailPath   sql.NullString
		mediumPath      sql.NullString
		largePath       sql.NullString
		videoPath       sql.NullString
		coverPath       sql.NullString
		durationSeconds sql.NullInt64
		width           sql.NullInt64
		height          sql.NullInt64
		sizeBytes       sql.NullInt64
		isPrimary       sql.NullInt64
		createdRaw      string
	)

	if err := scanner.Scan(
		&id,
		&ownerID,
		&kindStr,
		&originalPath,
		&thumbnailPath,
		&mediumPath,
		&largePath,
		&videoPath,
		&coverPath,
		&durationSeconds,
		&width,
		&height,
		&sizeBytes,
		&isPrimary,
		&createdRaw,
	); err != nil {
		return nil, err
	}

	record := &AssetRecord{
		ID:              id,
		OwnerID:         ownerID,
		Kind:            media.Kind(kindStr),
		OriginalPath:    originalPath.String,
		ThumbnailPath:   thumbnailPath.String,
		MediumPath:      mediumPath.String,
		LargePath:       largePath.String,
		VideoPath:       videoPath.String,
		CoverPath:       coverPath.String,
		DurationSeconds: int(durationSeconds.Int64),
		Width:           int(width.Int64),
		Height:          int(height.Int64),
		SizeBytes:       sizeBytes.Int64,
		IsPrimary:       isPrimary.Int64 != 0,
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		record.CreatedAt = created
	}
	return record, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
