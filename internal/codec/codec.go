package codec

import "context"

// Image variant names understood by every image tool.
const (
	ImageThumbnail = "thumbnail"
	ImageMedium    = "medium"
	ImageLarge     = "large"
)

// ImageVariantNames lists the derived renditions an image upload produces,
// in the order they are generated.
var ImageVariantNames = []string{ImageThumbnail, ImageMedium, ImageLarge}

// VideoInfo holds probe metadata and the extracted cover frame for an
// uploaded video.
type VideoInfo struct {
	Cover           []byte
	DurationSeconds int
	Width           int
	Height          int
}

// ImageCodec derives one named rendition from an original image payload.
// Variants are requested one at a time so callers can persist each result
// before paying for the next transform.
type ImageCodec interface {
	Derive(ctx context.Context, src []byte, variant string) ([]byte, error)
}

// VideoCodec inspects a video payload and extracts its cover frame.
type VideoCodec interface {
	Probe(ctx context.Context, src []byte) (VideoInfo, error)
}
