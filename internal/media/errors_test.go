package media_test

import (
	"errors"
	"strings"
	"testing"

	"mediastore/internal/media"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("disk full")
	err := media.Wrap(media.ErrIO, "assetstore", "write file", "cannot persist variant", base)
	if !errors.Is(err, media.ErrIO) {
		t.Fatalf("expected ErrIO classification, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped cause to remain reachable via errors.Is")
	}
	for _, fragment := range []string{"assetstore", "write file", "cannot persist variant"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in error, got %q", fragment, err.Error())
		}
	}
}

func TestWrapDefaultsToIO(t *testing.T) {
	err := media.Wrap(nil, "migrate", "copy", "", nil)
	if !errors.Is(err, media.ErrIO) {
		t.Fatalf("nil marker should default to ErrIO, got %v", err)
	}
}

func TestUserFacing(t *testing.T) {
	cases := []struct {
		marker error
		want   bool
	}{
		{media.ErrValidation, true},
		{media.ErrCodec, true},
		{media.ErrIO, false},
		{media.ErrConflict, false},
		{media.ErrBusy, false},
	}
	for _, tc := range cases {
		err := media.Wrap(tc.marker, "ingest", "op", "msg", nil)
		if got := media.UserFacing(err); got != tc.want {
			t.Fatalf("UserFacing(%v) = %v, want %v", tc.marker, got, tc.want)
		}
	}
}
