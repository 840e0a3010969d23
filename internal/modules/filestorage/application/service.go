package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/saransh1220/soundwave/internal/modules/filestorage/domain"
	"github.com/saransh1220/soundwave/internal/shared/apperr"
)

var assetOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "asset_store_operations_total",
	Help: "Asset store uploads and deletes by result.",
}, []string{"op", "result"})

// Options tune the asset service.
type Options struct {
	// KeyPrefix is prepended to every object key, e.g. "media/".
	KeyPrefix string
	// ImageMaxDimension bounds uploaded images; larger ones are fitted and
	// re-encoded as JPEG. Zero disables normalization.
	ImageMaxDimension int
}

// AssetService is the asset store adapter used by the catalog: it uploads
// local files and deletes assets by their permanent URL.
type AssetService struct {
	storage domain.FileStorage
	opts    Options
}

// NewAssetService creates a new asset service
func NewAssetService(storage domain.FileStorage, opts Options) *AssetService {
	return &AssetService{
		storage: storage,
		opts:    opts,
	}
}

// Upload stores the file at localPath and returns its permanent URL.
// The resource type is detected from the content. Any failure wraps
// apperr.ErrUpload.
func (s *AssetService) Upload(ctx context.Context, localPath string) (string, error) {
	asset, body, err := s.prepare(localPath)
	if err != nil {
		assetOps.WithLabelValues("upload", "error").Inc()
		return "", fmt.Errorf("%w: %v", apperr.ErrUpload, err)
	}
	if closer, ok := body.(io.Closer); ok {
		defer closer.Close()
	}

	url, err := s.storage.UploadFile(ctx, asset.Key, body, asset.ContentType)
	if err != nil {
		assetOps.WithLabelValues("upload", "error").Inc()
		log.Error().Err(err).Str("key", asset.Key).Msg("asset upload failed")
		return "", fmt.Errorf("%w: %v", apperr.ErrUpload, err)
	}

	assetOps.WithLabelValues("upload", "ok").Inc()
	log.Debug().Str("key", asset.Key).Str("type", string(asset.ResourceType)).Msg("asset uploaded")
	return url, nil
}

// Delete removes the asset behind url. It never fails hard: an underivable
// id returns false without calling the media host, and host errors are
// logged and reported as false.
func (s *AssetService) Delete(ctx context.Context, url string) bool {
	assetID, ok := domain.AssetIDFromURL(url)
	if !ok {
		assetOps.WithLabelValues("delete", "skipped").Inc()
		log.Warn().Str("url", url).Msg("asset delete skipped: cannot derive asset id")
		return false
	}

	n, err := s.storage.DeleteAsset(ctx, s.opts.KeyPrefix, assetID)
	if err != nil {
		assetOps.WithLabelValues("delete", "error").Inc()
		log.Warn().Err(err).Str("asset_id", assetID).Msg("asset delete failed")
		return false
	}
	if n == 0 {
		assetOps.WithLabelValues("delete", "missing").Inc()
		log.Warn().Str("asset_id", assetID).Msg("asset delete: nothing stored under id")
		return false
	}

	assetOps.WithLabelValues("delete", "ok").Inc()
	return true
}

// prepare opens the file, sniffs its type and, for oversized images,
// produces a normalized JPEG body.
func (s *AssetService) prepare(localPath string) (domain.Asset, io.Reader, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return domain.Asset{}, nil, fmt.Errorf("open %s: %w", filepath.Base(localPath), err)
	}

	contentType, err := detectContentType(f, localPath)
	if err != nil {
		f.Close()
		return domain.Asset{}, nil, err
	}

	asset := domain.Asset{
		ID:           uuid.New().String(),
		ContentType:  contentType,
		ResourceType: domain.ResourceTypeOf(contentType),
	}
	ext := strings.ToLower(filepath.Ext(localPath))

	if asset.ResourceType == domain.ResourceImage && s.opts.ImageMaxDimension > 0 {
		if buf, ok := s.normalizeImage(f); ok {
			f.Close()
			asset.ContentType = "image/jpeg"
			asset.Key = s.opts.KeyPrefix + asset.ID + ".jpg"
			asset.Size = int64(buf.Len())
			return asset, bytes.NewReader(buf.Bytes()), nil
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return domain.Asset{}, nil, err
		}
	}

	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	asset.Key = s.opts.KeyPrefix + asset.ID + ext
	return asset, f, nil
}

// normalizeImage fits images larger than the configured bound. It reports
// false when the image already fits or cannot be decoded; the caller then
// uploads the original bytes.
func (s *AssetService) normalizeImage(r io.Reader) (*bytes.Buffer, bool) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, false
	}
	bound := s.opts.ImageMaxDimension
	b := src.Bounds()
	if b.Dx() <= bound && b.Dy() <= bound {
		return nil, false
	}

	dst := imaging.Fit(src, bound, bound, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, dst, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, false
	}
	return buf, true
}

// detectContentType sniffs the first 512 bytes and falls back to the file
// extension when sniffing is inconclusive. The reader is rewound.
func detectContentType(f *os.File, name string) (string, error) {
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", filepath.Base(name), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(head[:n])
	if contentType == "application/octet-stream" || strings.HasPrefix(contentType, "text/plain") {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			contentType = byExt
		}
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return contentType, nil
}
