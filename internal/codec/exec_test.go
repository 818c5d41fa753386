package codec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"testing"

	"mediastore/internal/config"
	"mediastore/internal/media"
)

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		helperArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], helperArgs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("CODEC_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func helperConfig() *config.Config {
	cfg := config.Default()
	cfg.Codecs.TimeoutSeconds = 30
	return &cfg
}

func TestExecImageDerive(t *testing.T) {
	setHelperCommand(t, "image")

	img := NewExecImage(helperConfig())
	for _, variant := range ImageVariantNames {
		out, err := img.Derive(context.Background(), []byte("original"), variant)
		if err != nil {
			t.Fatalf("Derive(%s) returned error: %v", variant, err)
		}
		if string(out) != variant+":original" {
			t.Fatalf("unexpected %s payload %q", variant, out)
		}
	}
}

func TestExecImageRejectsEmptySource(t *testing.T) {
	if _, err := NewExecImage(helperConfig()).Derive(context.Background(), nil, ImageThumbnail); !errors.Is(err, media.ErrCodec) {
		t.Fatalf("expected ErrCodec, got %v", err)
	}
}

func TestExecImageToolFailure(t *testing.T) {
	setHelperCommand(t, "failure")

	_, err := NewExecImage(helperConfig()).Derive(context.Background(), []byte("original"), ImageLarge)
	if !errors.Is(err, media.ErrCodec) {
		t.Fatalf("expected ErrCodec, got %v", err)
	}
}

func TestExecImageEmptyToolOutput(t *testing.T) {
	setHelperCommand(t, "empty")

	_, err := NewExecImage(helperConfig()).Derive(context.Background(), []byte("original"), ImageMedium)
	if !errors.Is(err, media.ErrCodec) {
		t.Fatalf("expected ErrCodec for empty tool output, got %v", err)
	}
}

func TestExecVideoProbe(t *testing.T) {
	setHelperCommand(t, "video")

	info, err := NewExecVideo(helperConfig()).Probe(context.Background(), []byte("clip-bytes"))
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if info.DurationSeconds != 42 || info.Width != 1920 || info.Height != 1080 {
		t.Fatalf("unexpected metadata: %+v", info)
	}
	if string(info.Cover) != "cover:clip-bytes" {
		t.Fatalf("unexpected cover payload %q", info.Cover)
	}
}

func TestExecVideoBadMetadata(t *testing.T) {
	setHelperCommand(t, "badjson")

	_, err := NewExecVideo(helperConfig()).Probe(context.Background(), []byte("clip-bytes"))
	if !errors.Is(err, media.ErrCodec) {
		t.Fatalf("expected ErrCodec, got %v", err)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read stdin:", err)
		os.Exit(1)
	}

	switch os.Getenv("CODEC_HELPER_MODE") {
	case "image":
		fmt.Printf("%s:%s", mode, input)
		os.Exit(0)
	case "video":
		switch mode {
		case "probe":
			fmt.Print(`{"duration_seconds":42,"width":1920,"height":1080}`)
		case "cover":
			fmt.Printf("cover:%s", input)
		}
		os.Exit(0)
	case "badjson":
		fmt.Print("not-json")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "tool exploded")
		os.Exit(1)
	case "empty":
		os.Exit(0)
	default:
		os.Exit(0)
	}
}
