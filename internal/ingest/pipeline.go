package ingest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediastore/internal/assetstore"
	"mediastore/internal/codec"
	"mediastore/internal/config"
	"mediastore/internal/logging"
	"mediastore/internal/media"
	"mediastore/internal/records"
)

// Per-kind MIME allow-lists checked against both the declared type and the
// sniffed payload.
var (
	imageMIMEs = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	}
	videoMIMEs = map[string]string{
		"video/mp4":       ".mp4",
		"video/webm":      ".webm",
		"video/quicktime": ".mov",
	}
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".mov": true}
)

// Request describes one upload.
type Request struct {
	OwnerID      string
	DisplayName  string
	Kind         media.Kind
	Filename     string
	DeclaredMIME string
	Data         io.Reader
	// Progress, when set, receives the cumulative byte count as the raw
	// payload streams in.
	Progress func(bytesRead int64)
}

// Pipeline ingests uploads into the asset stores and the record index.
type Pipeline struct {
	photos  *assetstore.Store
	videos  *assetstore.Store
	records *records.Store
	image   codec.ImageCodec
	video   codec.VideoCodec
	limits  config.Uploads
	logger  *slog.Logger
}

// New wires a pipeline from configuration and its collaborators.
func New(cfg *config.Config, index *records.Store, image codec.ImageCodec, video codec.VideoCodec, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		photos:  assetstore.ForClass(cfg, media.ClassPhotos, logger),
		videos:  assetstore.ForClass(cfg, media.ClassVideos, logger),
		records: index,
		image:   image,
		video:   video,
		limits:  cfg.Uploads,
		logger:  logger.With(logging.String(logging.FieldComponent, "ingest")),
	}
}

// Ingest runs one upload through validation, variant production, persistence,
// and commit. A non-nil record is returned only when the commit succeeded; by
// then every variant path in the record resolves to a file on disk.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*records.AssetRecord, error) {
	if err := p.checkRequest(req); err != nil {
		return nil, err
	}

	payload, err := p.readPayload(req)
	if err != nil {
		return nil, err
	}
	if err := p.checkContent(req, payload); err != nil {
		return nil, err
	}

	store := p.storeFor(req.Kind)
	folder, err := store.EnsureFolder(req.OwnerID, req.DisplayName)
	if err != nil {
		return nil, err
	}

	assetID := uuid.NewString()
	record := &records.AssetRecord{
		ID:        assetID,
		OwnerID:   req.OwnerID,
		Kind:      req.Kind,
		SizeBytes: int64(len(payload)),
		CreatedAt: time.Now().UTC(),
	}

	written, err := p.produceAndPersist(ctx, store, folder, assetID, req, payload, record)
	if err != nil {
		p.discard(store, written)
		return nil, err
	}

	if err := p.records.Create(ctx, record); err != nil {
		p.discard(store, written)
		return nil, media.Wrap(media.ErrIO, "ingest", "commit", "insert asset record", err)
	}

	p.logger.Info("upload committed",
		logging.String(logging.FieldOwnerID, req.OwnerID),
		logging.String(logging.FieldAssetID, record.ID),
		logging.String("kind", string(req.Kind)),
		logging.Int("files", len(written)),
		logging.Int64("bytes", record.SizeBytes),
	)
	return record, nil
}

func (p *Pipeline) checkRequest(req Request) error {
	if strings.TrimSpace(req.OwnerID) == "" {
		return media.Wrap(media.ErrValidation, "ingest", "validate", "owner id required", nil)
	}
	if strings.TrimSpace(req.Filename) == "" {
		return media.Wrap(media.ErrValidation, "ingest", "validate", "filename required", nil)
	}
	if req.Data == nil {
		return media.Wrap(media.ErrValidation, "ingest", "validate", "empty upload body", nil)
	}
	if req.Kind != media.KindImage && req.Kind != media.KindVideo {
		return media.Wrap(media.ErrValidation, "ingest", "validate", "unknown asset kind "+string(req.Kind), nil)
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	allowedExts := imageExts
	allowedMIMEs := imageMIMEs
	if req.Kind == media.KindVideo {
		allowedExts = videoExts
		allowedMIMEs = videoMIMEs
	}
	if !allowedExts[ext] {
		return reject(ReasonUnsupportedType, "extension %q not allowed for %s uploads", ext, req.Kind)
	}
	if declared := normalizeMIME(req.DeclaredMIME); declared != "" {
		if _, ok := allowedMIMEs[declared]; !ok {
			return reject(ReasonUnsupportedType, "declared type %q not allowed for %s uploads", declared, req.Kind)
		}
	}
	return nil
}

// readPayload streams the upload into memory, reporting progress and
// enforcing the per-kind cap while bytes are still arriving.
func (p *Pipeline) readPayload(req Request) ([]byte, error) {
	limit := p.limits.ImageMaxBytes
	if req.Kind == media.KindVideo {
		limit = p.limits.VideoMaxBytes
	}

	var buf bytes.Buffer
	var total int64
	chunk := make([]byte, 32*1024)
	for {
		n, err := req.Data.Read(chunk)
		if n > 0 {
			total += int64(n)
			if limit > 0 && total > limit {
				return nil, reject(ReasonTooLarge, "payload exceeds %d byte limit for %s uploads", limit, req.Kind)
			}
			buf.Write(chunk[:n])
			if req.Progress != nil {
				req.Progress(total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, media.Wrap(media.ErrIO, "ingest", "read", "read upload body", err)
		}
	}
	if buf.Len() == 0 {
		return nil, media.Wrap(media.ErrValidation, "ingest", "validate", "empty upload body", nil)
	}
	return buf.Bytes(), nil
}

// checkContent sniffs the payload magic number; declared metadata alone is
// not trusted.
func (p *Pipeline) checkContent(req Request, payload []byte) error {
	sniffed := sniffContentType(payload)
	allowed := imageMIMEs
	if req.Kind == media.KindVideo {
		allowed = videoMIMEs
	}
	if _, ok := allowed[sniffed]; !ok {
		return reject(ReasonUnsupportedType, "payload sniffed as %q, not a supported %s type", sniffed, req.Kind)
	}
	return nil
}

// sniffContentType extends the stdlib sniffer with QuickTime, which its
// signature table does not cover even though the container is allow-listed.
func sniffContentType(payload []byte) string {
	sniffed := normalizeMIME(http.DetectContentType(payload))
	if sniffed == "application/octet-stream" && isQuickTime(payload) {
		return "video/quicktime"
	}
	return sniffed
}

// isQuickTime recognizes a QuickTime container by its ftyp box carrying a
// qt brand, or by a bare top-level movie atom in brandless legacy files.
func isQuickTime(payload []byte) bool {
	if len(payload) < 12 {
		return false
	}
	if bytes.Equal(payload[4:8], []byte("ftyp")) {
		return bytes.HasPrefix(payload[8:12], []byte("qt"))
	}
	switch string(payload[4:8]) {
	case "moov", "mdat", "wide", "free", "skip", "pnot":
		return true
	}
	return false
}

// produceAndPersist derives the variants and writes each one as it is
// produced. It returns the root-relative paths written so far, including on
// error, so the caller can discard them.
func (p *Pipeline) produceAndPersist(ctx context.Context, store *assetstore.Store, folder, assetID string, req Request, payload []byte, record *records.AssetRecord) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}

	var written []string
	write := func(name string, data []byte) (string, error) {
		rel, _, err := store.WriteFile(folder, name, bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		written = append(written, rel)
		return rel, nil
	}

	if req.Kind == media.KindImage {
		for _, variant := range codec.ImageVariantNames {
			data, err := p.image.Derive(ctx, payload, variant)
			if err != nil {
				return written, err
			}
			rel, err := write(assetID+"_"+variant+ext, data)
			if err != nil {
				return written, err
			}
			switch variant {
			case codec.ImageThumbnail:
				record.ThumbnailPath = rel
			case codec.ImageMedium:
				record.MediumPath = rel
			case codec.ImageLarge:
				record.LargePath = rel
			}
		}
		rel, err := write(assetID+"_original"+ext, payload)
		if err != nil {
			return written, err
		}
		record.OriginalPath = rel
		return written, nil
	}

	info, err := p.video.Probe(ctx, payload)
	if err != nil {
		return written, err
	}
	rel, err := write(assetID+"_video"+ext, payload)
	if err != nil {
		return written, err
	}
	record.VideoPath = rel
	cover, err := write(assetID+"_cover.jpg", info.Cover)
	if err != nil {
		return written, err
	}
	record.CoverPath = cover
	record.DurationSeconds = info.DurationSeconds
	record.Width = info.Width
	record.Height = info.Height
	return written, nil
}

// discard removes everything written for a failed upload so the folder holds
// no half-ingested asset.
func (p *Pipeline) discard(store *assetstore.Store, written []string) {
	for _, rel := range written {
		if err := store.RemoveFile(rel); err != nil {
			p.logger.Warn("failed to remove partial upload file",
				logging.String("path", rel),
				logging.Error(err),
			)
		}
	}
}

func (p *Pipeline) storeFor(kind media.Kind) *assetstore.Store {
	if kind == media.KindVideo {
		return p.videos
	}
	return p.photos
}

func normalizeMIME(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if idx := strings.IndexByte(value, ';'); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}
