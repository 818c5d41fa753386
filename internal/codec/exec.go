package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"mediastore/internal/config"
	"mediastore/internal/media"
)

var commandContext = exec.CommandContext

// ExecImage shells out to the configured image tool. The tool is invoked
// once per variant as `<tool> <variant>` with the original payload on
// stdin and the derived payload expected on stdout.
type ExecImage struct {
	binary  string
	timeout time.Duration
}

// NewExecImage constructs the exec-backed image codec from configuration.
func NewExecImage(cfg *config.Config) *ExecImage {
	return &ExecImage{
		binary:  cfg.Codecs.ImageTool,
		timeout: time.Duration(cfg.Codecs.TimeoutSeconds) * time.Second,
	}
}

// Derive produces one named rendition of the source image.
func (c *ExecImage) Derive(ctx context.Context, src []byte, variant string) ([]byte, error) {
	if len(src) == 0 {
		return nil, media.Wrap(media.ErrCodec, "codec", "derive", "empty source payload", nil)
	}

	runCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := commandContext(runCtx, c.binary, variant) //nolint:gosec
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, media.Wrap(media.ErrCodec, "codec", "derive", toolDetail(c.binary, variant, &stderr), err)
	}
	if stdout.Len() == 0 {
		return nil, media.Wrap(media.ErrCodec, "codec", "derive", toolDetail(c.binary, variant, &stderr)+": empty output", nil)
	}
	return stdout.Bytes(), nil
}

// ExecVideo shells out to the configured video tool. `<tool> probe` reads
// the payload from stdin and writes JSON metadata to stdout; `<tool> cover`
// reads the payload from stdin and writes the cover frame to stdout.
type ExecVideo struct {
	binary  string
	timeout time.Duration
}

// NewExecVideo constructs the exec-backed video codec from configuration.
func NewExecVideo(cfg *config.Config) *ExecVideo {
	return &ExecVideo{
		binary:  cfg.Codecs.VideoTool,
		timeout: time.Duration(cfg.Codecs.TimeoutSeconds) * time.Second,
	}
}

// Probe returns stream metadata plus the extracted cover frame.
func (c *ExecVideo) Probe(ctx context.Context, src []byte) (VideoInfo, error) {
	if len(src) == 0 {
		return VideoInfo{}, media.Wrap(media.ErrCodec, "codec", "probe", "empty source payload", nil)
	}

	metadata, err := c.run(ctx, src, "probe")
	if err != nil {
		return VideoInfo{}, err
	}
	var payload struct {
		DurationSeconds float64 `json:"duration_seconds"`
		Width           int     `json:"width"`
		Height          int     `json:"height"`
	}
	if err := json.Unmarshal(metadata, &payload); err != nil {
		return VideoInfo{}, media.Wrap(media.ErrCodec, "codec", "probe", "decode tool metadata", err)
	}

	cover, err := c.run(ctx, src, "cover")
	if err != nil {
		return VideoInfo{}, err
	}

	return VideoInfo{
		Cover:           cover,
		DurationSeconds: int(payload.DurationSeconds),
		Width:           payload.Width,
		Height:          payload.Height,
	}, nil
}

func (c *ExecVideo) run(ctx context.Context, src []byte, mode string) ([]byte, error) {
	runCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := commandContext(runCtx, c.binary, mode) //nolint:gosec
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, media.Wrap(media.ErrCodec, "codec", mode, toolDetail(c.binary, mode, &stderr), err)
	}
	if stdout.Len() == 0 {
		return nil, media.Wrap(media.ErrCodec, "codec", mode, toolDetail(c.binary, mode, &stderr)+": empty output", nil)
	}
	return stdout.Bytes(), nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func toolDetail(binary, mode string, stderr *bytes.Buffer) string {
	detail := binary + " " + mode
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		detail += ": " + msg
	}
	return detail
}

var (
	_ ImageCodec = (*ExecImage)(nil)
	_ VideoCodec = (*ExecVideo)(nil)
)
