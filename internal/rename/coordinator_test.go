package rename_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"mediastore/internal/assetstore"
	"mediastore/internal/config"
	"mediastore/internal/media"
	"mediastore/internal/records"
	"mediastore/internal/rename"
	"mediastore/internal/testsupport"
)

// seedImageAsset creates an owner folder with the standard variant files and
// a record referencing them.
func seedImageAsset(t *testing.T, cfg *config.Config, index *records.Store, ownerID, displayName string) (*records.AssetRecord, string) {
	t.Helper()

	photos := assetstore.ForClass(cfg, media.ClassPhotos, nil)
	token, err := photos.EnsureFolder(ownerID, displayName)
	if err != nil {
		t.Fatal(err)
	}

	record := &records.AssetRecord{
		OwnerID: ownerID,
		Kind:    media.KindImage,
	}
	for _, variant := range []struct {
		name string
		dst  *string
	}{
		{"original", &record.OriginalPath},
		{"thumbnail", &record.ThumbnailPath},
		{"medium", &record.MediumPath},
		{"large", &record.LargePath},
	} {
		rel, _, err := photos.WriteFile(token, "asset1_"+variant.name+".jpg", bytes.NewReader([]byte(variant.name+"-bytes")))
		if err != nil {
			t.Fatal(err)
		}
		*variant.dst = rel
	}
	if err := index.Create(context.Background(), record); err != nil {
		t.Fatal(err)
	}
	return record, token
}

func TestRenameMovesFolderAndRewritesRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	index := testsupport.MustOpenStore(t, cfg)
	record, oldToken := seedImageAsset(t, cfg, index, "u1", "Amy/Star")
	if oldToken != "u1_Amy_Star" {
		t.Fatalf("unexpected starting token %q", oldToken)
	}

	coordinator := rename.New(cfg, index, nil)
	report, err := coordinator.Rename(context.Background(), "u1", "Amy ☆☆☆ Long Name Exceeding Limit")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if report.Outcome() != rename.OutcomeComplete {
		t.Fatalf("expected complete outcome, got %s (%+v)", report.Outcome(), report)
	}

	const newToken = "u1_Amy_Long_Name_Exceed"
	photos := assetstore.ForClass(cfg, media.ClassPhotos, nil)
	resolved, found, err := photos.ResolveFolder("u1")
	if err != nil || !found {
		t.Fatalf("owner folder missing after rename: %v", err)
	}
	if resolved != newToken {
		t.Fatalf("expected folder token %q, got %q", newToken, resolved)
	}
	if _, err := os.Stat(photos.FolderPath(oldToken)); !os.IsNotExist(err) {
		t.Fatal("old folder should be gone after full migration")
	}

	updated, err := index.GetByID(context.Background(), record.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, vp := range updated.VariantPaths() {
		if !strings.HasPrefix(vp.Path, newToken+"/") {
			t.Fatalf("variant %s still references old token: %q", vp.Variant, vp.Path)
		}
		if !photos.FileExists(vp.Path) {
			t.Fatalf("variant %s path %q does not resolve after rename", vp.Variant, vp.Path)
		}
	}

	for _, class := range report.Classes {
		if class.Class == media.ClassPhotos {
			if class.Migration.Succeeded != 4 {
				t.Fatalf("expected 4 migrated files, got %+v", class.Migration)
			}
			if class.Rewrite.Updated != 1 {
				t.Fatalf("expected 1 rewritten record, got %+v", class.Rewrite)
			}
		}
		if class.Class == media.ClassVideos && class.Outcome != rename.OutcomeNoAssets {
			t.Fatalf("videos root should report no assets, got %s", class.Outcome)
		}
	}
}

func TestRenameUnknownOwnerReportsNoAssets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	index := testsupport.MustOpenStore(t, cfg)

	report, err := rename.New(cfg, index, nil).Rename(context.Background(), "ghost", "New Name")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if report.Outcome() != rename.OutcomeNoAssets {
		t.Fatalf("expected no-assets outcome, got %s", report.Outcome())
	}
}

func TestRenameSameTokenIsUnchanged(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	index := testsupport.MustOpenStore(t, cfg)
	record, token := seedImageAsset(t, cfg, index, "u1", "Amy Star")

	report, err := rename.New(cfg, index, nil).Rename(context.Background(), "u1", "Amy Star")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if report.Outcome() != rename.OutcomeUnchanged {
		t.Fatalf("expected unchanged outcome, got %s", report.Outcome())
	}

	photos := assetstore.ForClass(cfg, media.ClassPhotos, nil)
	files, err := photos.ListFiles(token)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 4 {
		t.Fatalf("folder contents changed: %v", files)
	}

	updated, err := index.GetByID(context.Background(), record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.OriginalPath != record.OriginalPath {
		t.Fatal("record paths must not change for an unchanged rename")
	}
}

func TestRenameConflictLeavesSourceUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	index := testsupport.MustOpenStore(t, cfg)
	_, oldToken := seedImageAsset(t, cfg, index, "u1", "Amy")

	// Occupy the target token with someone else's content.
	photos := assetstore.ForClass(cfg, media.ClassPhotos, nil)
	const newName = "Amy Prime"
	const newToken = "u1_Amy_Prime"
	if _, _, err := photos.WriteFile(newToken, "squatter.jpg", bytes.NewReader([]byte("taken"))); err != nil {
		t.Fatal(err)
	}

	report, err := rename.New(cfg, index, nil).Rename(context.Background(), "u1", newName)
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if report.Outcome() != rename.OutcomeConflict {
		t.Fatalf("expected conflict outcome, got %s", report.Outcome())
	}

	files, err := photos.ListFiles(oldToken)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 4 {
		t.Fatalf("source folder was modified on conflict: %v", files)
	}
}

func TestRenameClaimsEmptyTargetFolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	index := testsupport.MustOpenStore(t, cfg)
	_, oldToken := seedImageAsset(t, cfg, index, "u1", "Amy")

	// A leftover empty directory at the target token holds nothing that a
	// move could clobber, so the rename takes it over.
	photos := assetstore.ForClass(cfg, media.ClassPhotos, nil)
	const newToken = "u1_Zoe"
	if err := os.MkdirAll(photos.FolderPath(newToken), 0o755); err != nil {
		t.Fatal(err)
	}

	report, err := rename.New(cfg, index, nil).Rename(context.Background(), "u1", "Zoe")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if report.Outcome() != rename.OutcomeComplete {
		t.Fatalf("expected complete outcome, got %s", report.Outcome())
	}

	files, err := photos.ListFiles(newToken)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 files in claimed folder, got %v", files)
	}
	if _, err := os.Stat(photos.FolderPath(oldToken)); !os.IsNotExist(err) {
		t.Fatalf("old folder still present after rename: %v", err)
	}
}

func TestRenameRejectsConcurrentOwnerRename(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	index := testsupport.MustOpenStore(t, cfg)
	seedImageAsset(t, cfg, index, "u1", "Amy")

	if err := os.MkdirAll(cfg.Paths.LockDir, 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(filepath.Join(cfg.Paths.LockDir, "rename-u1.lock"))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("could not pre-acquire owner lock: %v", err)
	}
	defer held.Unlock()

	_, err = rename.New(cfg, index, nil).Rename(context.Background(), "u1", "Amy Second")
	if !errors.Is(err, media.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}
