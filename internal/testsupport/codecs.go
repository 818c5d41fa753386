package testsupport

import (
	"context"

	"mediastore/internal/codec"
	"mediastore/internal/media"
)

// FakeImageCodec derives deterministic variants in memory. Set FailOn to a
// variant name to make that single derivation fail with a codec error, or
// Err to make every call fail.
type FakeImageCodec struct {
	FailOn string
	Err    error
	Calls  int
}

// Derive prefixes the source with the variant name.
func (f *FakeImageCodec) Derive(_ context.Context, src []byte, variant string) ([]byte, error) {
	f.Calls++
	if f.Err != nil || (f.FailOn != "" && f.FailOn == variant) {
		return nil, media.Wrap(media.ErrCodec, "codec", "derive", "fake failure for "+variant, f.Err)
	}
	return append([]byte(variant+":"), src...), nil
}

// FakeVideoCodec returns fixed probe metadata with a deterministic cover.
// Set Err to make every call fail with a codec error.
type FakeVideoCodec struct {
	Err             error
	Calls           int
	DurationSeconds int
	Width           int
	Height          int
}

// Probe returns the configured metadata, defaulting to a 10s 1280x720 clip.
func (f *FakeVideoCodec) Probe(_ context.Context, src []byte) (codec.VideoInfo, error) {
	f.Calls++
	if f.Err != nil {
		return codec.VideoInfo{}, media.Wrap(media.ErrCodec, "codec", "probe", "fake failure", f.Err)
	}
	info := codec.VideoInfo{
		Cover:           append([]byte("cover:"), src...),
		DurationSeconds: f.DurationSeconds,
		Width:           f.Width,
		Height:          f.Height,
	}
	if info.DurationSeconds == 0 {
		info.DurationSeconds = 10
	}
	if info.Width == 0 {
		info.Width = 1280
	}
	if info.Height == 0 {
		info.Height = 720
	}
	return info, nil
}

var (
	_ codec.ImageCodec = (*FakeImageCodec)(nil)
	_ codec.VideoCodec = (*FakeVideoCodec)(nil)
)
