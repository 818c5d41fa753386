package records

import (
	"time"

	"mediastore/internal/media"
)

// Variant names one derived rendition of an asset.
type Variant string

const (
	VariantOriginal  Variant = "original"
	VariantThumbnail Variant = "thumbnail"
	VariantMedium    Variant = "medium"
	VariantLarge     Variant = "large"
	VariantVideo     Variant = "video"
	VariantCover     Variant = "cover"
)

// AssetRecord represents one uploaded photo or video. Variant paths are
// stored relative to the asset-class root; an empty string means the variant
// does not exist for this kind.
type AssetRecord struct {
	ID              string
	OwnerID         string
	Kind            media.Kind
	OriginalPath    string
	ThumbnailPath   string
	MediumPath      string
	LargePath       string
	VideoPath       string
	CoverPath       string
	DurationSeconds int
	Width           int
	Height          int
	SizeBytes       int64
	IsPrimary       bool
	CreatedAt       time.Time
}

// VariantPath holds one named variant path of a record.
type VariantPath struct {
	Variant Variant
	Path    string
}

// VariantPaths returns the non-empty variant paths of the record in a stable
// order. Callers must not assume any particular subset is present; the set
// depends on the asset kind and on what the upload pipeline produced.
func (r *AssetRecord) VariantPaths() []VariantPath {
	out := make([]VariantPath, 0, 6)
	for _, vp := range []VariantPath{
		{VariantOriginal, r.OriginalPath},
		{VariantThumbnail, r.ThumbnailPath},
		{VariantMedium, r.MediumPath},
		{VariantLarge, r.LargePath},
		{VariantVideo, r.VideoPath},
		{VariantCover, r.CoverPath},
	} {
		if vp.Path != "" {
			out = append(out, vp)
		}
	}
	return out
}

// setVariant writes a path back into its variant field.
func (r *AssetRecord) setVariant(v Variant, path string) {
	switch v {
	case VariantOriginal:
		r.OriginalPath = path
	case VariantThumbnail:
		r.ThumbnailPath = path
	case VariantMedium:
		r.MediumPath = path
	case VariantLarge:
		r.LargePath = path
	case VariantVideo:
		r.VideoPath = path
	case VariantCover:
		r.CoverPath = path
	}
}
