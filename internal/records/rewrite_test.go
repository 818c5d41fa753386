package records_test

import (
	"context"
	"testing"

	"mediastore/internal/media"
	"mediastore/internal/records"
	"mediastore/internal/testsupport"
)

func TestRewriteFolderPathsUpdatesMatchingRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	image := &records.AssetRecord{
		OwnerID:       "u1",
		Kind:          media.KindImage,
		OriginalPath:  "u1_Amy_Star/a_original.jpg",
		ThumbnailPath: "u1_Amy_Star/a_thumbnail.jpg",
		MediumPath:    "u1_Amy_Star/a_medium.jpg",
	}
	video := &records.AssetRecord{
		OwnerID:   "u1",
		Kind:      media.KindVideo,
		VideoPath: "u1_Amy_Star/b.mp4",
		CoverPath: "u1_Amy_Star/b_cover.jpg",
	}
	other := &records.AssetRecord{
		OwnerID:      "u2",
		Kind:         media.KindImage,
		OriginalPath: "u2_Bea/c_original.jpg",
	}
	for _, record := range []*records.AssetRecord{image, video, other} {
		if err := store.Create(ctx, record); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	result, err := store.RewriteFolderPaths(ctx, "u1", media.KindImage, "u1_Amy_Star", "u1_Amy_Nova")
	if err != nil {
		t.Fatalf("RewriteFolderPaths failed: %v", err)
	}
	if result.Updated != 1 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	updated, err := store.GetByID(ctx, image.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.OriginalPath != "u1_Amy_Nova/a_original.jpg" {
		t.Fatalf("original path not rewritten: %q", updated.OriginalPath)
	}
	if updated.ThumbnailPath != "u1_Amy_Nova/a_thumbnail.jpg" || updated.MediumPath != "u1_Amy_Nova/a_medium.jpg" {
		t.Fatalf("variant paths not rewritten: %#v", updated)
	}

	// The video record belongs to a different kind and must be untouched.
	untouchedVideo, err := store.GetByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if untouchedVideo.VideoPath != "u1_Amy_Star/b.mp4" {
		t.Fatalf("video record was rewritten: %q", untouchedVideo.VideoPath)
	}

	untouchedOwner, err := store.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if untouchedOwner.OriginalPath != "u2_Bea/c_original.jpg" {
		t.Fatalf("other owner's record was rewritten: %q", untouchedOwner.OriginalPath)
	}
}

func TestRewriteFolderPathsNoOpOnEqualTokens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	result, err := store.RewriteFolderPaths(context.Background(), "u1", media.KindImage, "same", "same")
	if err != nil {
		t.Fatalf("RewriteFolderPaths failed: %v", err)
	}
	if result.Updated != 0 || len(result.Errors) != 0 {
		t.Fatalf("expected no-op result, got %+v", result)
	}
}

func TestRewriteFolderPathsRejectsEmptyTokens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.RewriteFolderPaths(context.Background(), "u1", media.KindImage, "", "new"); err == nil {
		t.Fatal("expected error for empty old token")
	}
}

func TestRewriteFolderPathsCountsUnchanged(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	record := &records.AssetRecord{
		OwnerID:      "u1",
		Kind:         media.KindImage,
		OriginalPath: "u1_Other_Folder/a.jpg",
	}
	if err := store.Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	result, err := store.RewriteFolderPaths(ctx, "u1", media.KindImage, "u1_Missing", "u1_New")
	if err != nil {
		t.Fatalf("RewriteFolderPaths failed: %v", err)
	}
	if result.Updated != 0 || result.Unchanged != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
