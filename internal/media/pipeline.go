package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/media/storage"
	"github.com/artfolio/artwork-indexer/internal/uri"
)

// Pipeline resolves a media URI into stored, servable media: fetch, sniff,
// re-encode, upload. Work runs on a bounded worker pool.
//
//go:generate mockgen -source=pipeline.go -destination=../mocks/media_pipeline.go -package=mocks -mock_names=Pipeline=MockPipeline
type Pipeline interface {
	// ResolveMedia fetches the URI, sniffs the content, re-encodes still
	// images over budget, and hands the result to the storage collaborator.
	// The returned ResolvedURL is the storage URL, or the gateway URL when
	// upload fails so the artwork is never left medialess. The tag makes
	// re-uploads of the same artwork idempotent.
	ResolveMedia(ctx context.Context, mediaURI, tag string) (*domain.MediaFetchResult, error)

	// Close drains the worker pool
	Close()
}

type pipeline struct {
	resolver  uri.Resolver
	reencoder Reencoder
	codec     adapter.ImageCodec
	prober    adapter.VideoProber
	storage   storage.Provider
	config    config.MediaConfig
	pool      pond.ResultPool[*domain.MediaFetchResult]
}

// NewPipeline creates a media pipeline with a bounded worker pool
func NewPipeline(
	resolver uri.Resolver,
	reencoder Reencoder,
	codec adapter.ImageCodec,
	prober adapter.VideoProber,
	storageProvider storage.Provider,
	cfg config.MediaConfig,
) Pipeline {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.UploadRetries <= 0 {
		cfg.UploadRetries = 3
	}

	return &pipeline{
		resolver:  resolver,
		reencoder: reencoder,
		codec:     codec,
		prober:    prober,
		storage:   storageProvider,
		config:    cfg,
		pool:      pond.NewResultPool[*domain.MediaFetchResult](cfg.WorkerCount),
	}
}

// ResolveMedia resolves one media URI on the worker pool
func (p *pipeline) ResolveMedia(ctx context.Context, mediaURI, tag string) (*domain.MediaFetchResult, error) {
	if mediaURI == "" {
		return nil, fmt.Errorf("media URI cannot be empty")
	}

	task := p.pool.SubmitErr(func() (*domain.MediaFetchResult, error) {
		return p.resolveMedia(ctx, mediaURI, tag)
	})

	return task.Wait()
}

// Close drains the worker pool
func (p *pipeline) Close() {
	_ = p.pool.Stop()
}

func (p *pipeline) resolveMedia(ctx context.Context, mediaURI, tag string) (*domain.MediaFetchResult, error) {
	// A bounded read is enough to sniff the content type before committing
	// to the full download
	peeked, err := p.resolver.Peek(ctx, mediaURI)
	if err != nil {
		return nil, err
	}

	mime := sniffMime(peeked)
	filename := baseNameFor(mediaURI, peeked.ResolvedURL)

	logger.DebugCtx(ctx, "Sniffed media URI",
		zap.String("uri", mediaURI),
		zap.String("mime", mime),
	)

	switch {
	case strings.HasPrefix(mime, "video/") && peeked.ResolvedURL != "":
		// The storage collaborator ingests video straight from the resolved
		// URL; the full body is never needed locally
		return p.processVideo(ctx, peeked, mime, filename, tag)

	case strings.HasPrefix(mime, "image/"),
		strings.HasPrefix(mime, "video/"),
		isPassthroughMime(mime):
		// Fall through to the full fetch below

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, mime)
	}

	resource, err := p.resolver.Fetch(ctx, mediaURI)
	if err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Resolved media URI",
		zap.String("uri", mediaURI),
		zap.String("mime", mime),
		zap.Int("size", len(resource.Data)),
	)

	switch {
	case strings.HasPrefix(mime, "image/"):
		return p.processImage(ctx, resource, mime, filename, tag)

	case strings.HasPrefix(mime, "video/"):
		return p.processVideo(ctx, resource, mime, filename, tag)

	default:
		// Interactive and document content is served from where it lives
		return &domain.MediaFetchResult{
			Data:        resource.Data,
			Mime:        mime,
			Filename:    filename,
			ResolvedURL: resource.ResolvedURL,
		}, nil
	}
}

// processImage re-encodes the still image when needed and uploads it. Upload
// failure falls back to the gateway URL.
func (p *pipeline) processImage(ctx context.Context, resource *uri.Resource, mime, filename, tag string) (*domain.MediaFetchResult, error) {
	finalData := resource.Data
	finalMime := mime
	dimensions := p.imageDimensions(ctx, resource.Data)

	reencoded, err := p.reencoder.Reencode(ctx, resource.Data, mime)
	switch {
	case err == nil:
		finalData = reencoded.Data
		finalMime = reencoded.Mime
	case reencoded != nil:
		// Budget not met; the best attempt is still better than the original
		logger.WarnCtx(ctx, "Using best re-encode attempt over budget",
			zap.String("tag", tag),
			zap.Int("size", len(reencoded.Data)),
			zap.Error(err),
		)
		finalData = reencoded.Data
		finalMime = reencoded.Mime
	default:
		logger.WarnCtx(ctx, "Re-encoding failed, uploading original bytes",
			zap.String("tag", tag),
			zap.Error(err),
		)
	}
	if reencoded != nil && reencoded.Width > 0 && reencoded.Height > 0 {
		dimensions = &domain.Dimensions{Width: reencoded.Width, Height: reencoded.Height}
	}

	result := &domain.MediaFetchResult{
		Data:        finalData,
		Mime:        finalMime,
		Filename:    filename,
		ResolvedURL: resource.ResolvedURL,
		Dimensions:  dimensions,
	}

	// An earlier run may already have stored this artwork's image
	if existing, err := p.storage.FindImageByTag(ctx, tag); err != nil {
		logger.WarnCtx(ctx, "Tag lookup failed, uploading anyway", zap.String("tag", tag), zap.Error(err))
	} else if existing != nil {
		logger.DebugCtx(ctx, "Reusing stored image", zap.String("tag", tag), zap.String("assetID", existing.AssetID))
		result.ResolvedURL = existing.URL
		return result, nil
	}

	var asset *storage.Asset
	uploadErr := p.withUploadRetry(ctx, func() error {
		var err error
		asset, err = p.storage.UploadImage(ctx, finalData, filename, finalMime, tag)
		return err
	})
	if uploadErr != nil {
		// The gateway URL keeps the artwork renderable until the next run
		logger.WarnCtx(ctx, "Image upload failed, falling back to gateway URL",
			zap.String("tag", tag),
			zap.String("gatewayURL", resource.ResolvedURL),
			zap.Error(uploadErr),
		)
		return result, nil
	}

	result.ResolvedURL = asset.URL
	return result, nil
}

// processVideo uploads the video as-is from its resolved URL. Transcoding is
// the storage collaborator's job.
func (p *pipeline) processVideo(ctx context.Context, resource *uri.Resource, mime, filename, tag string) (*domain.MediaFetchResult, error) {
	result := &domain.MediaFetchResult{
		Data:        resource.Data,
		Mime:        mime,
		Filename:    filename,
		ResolvedURL: resource.ResolvedURL,
		Dimensions:  p.videoDimensions(ctx, resource.ResolvedURL),
	}

	// Inline video has no URL the storage collaborator can ingest from
	if resource.ResolvedURL == "" {
		return result, nil
	}

	var asset *storage.Asset
	uploadErr := p.withUploadRetry(ctx, func() error {
		var err error
		asset, err = p.storage.UploadVideo(ctx, resource.ResolvedURL, tag)
		return err
	})
	if uploadErr != nil {
		logger.WarnCtx(ctx, "Video upload failed, falling back to gateway URL",
			zap.String("tag", tag),
			zap.String("gatewayURL", resource.ResolvedURL),
			zap.Error(uploadErr),
		)
		return result, nil
	}

	if asset.URL != "" {
		result.ResolvedURL = asset.URL
		result.Mime = asset.Mime
	}
	return result, nil
}

// imageDimensions reads image dimensions, nil when undecodable
func (p *pipeline) imageDimensions(ctx context.Context, data []byte) *domain.Dimensions {
	width, height, err := p.codec.DecodeConfig(data)
	if err != nil {
		logger.DebugCtx(ctx, "Could not decode image dimensions", zap.Error(err))
		return nil
	}
	return &domain.Dimensions{Width: width, Height: height}
}

// videoDimensions probes video dimensions, nil when the probe fails
func (p *pipeline) videoDimensions(ctx context.Context, resolvedURL string) *domain.Dimensions {
	if resolvedURL == "" {
		return nil
	}
	width, height, err := p.prober.ProbeDimensions(ctx, resolvedURL)
	if err != nil {
		logger.DebugCtx(ctx, "Could not probe video dimensions",
			zap.String("url", resolvedURL),
			zap.Error(err),
		)
		return nil
	}
	return &domain.Dimensions{Width: width, Height: height}
}

// withUploadRetry retries a transient upload failure a bounded number of times
func (p *pipeline) withUploadRetry(ctx context.Context, operation func() error) error {
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(p.config.UploadRetries))
	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// sniffMime determines the content type. Sniffed bytes are authoritative;
// the URI's own declared type is the last resort for generic detections.
func sniffMime(resource *uri.Resource) string {
	detected := mimetype.Detect(resource.Data)
	mime := strings.TrimSpace(strings.Split(detected.String(), ";")[0])

	if (mime == "application/octet-stream" || mime == "text/plain") && resource.MimeHint != "" {
		return strings.TrimSpace(strings.Split(resource.MimeHint, ";")[0])
	}
	return mime
}

// isPassthroughMime reports whether the content is interactive or document
// content served without processing
func isPassthroughMime(mime string) bool {
	switch mime {
	case "text/html", "application/pdf", "text/javascript", "application/javascript":
		return true
	}
	return false
}

// baseNameFor derives a filename from the resolved URL, falling back to the
// source URI
func baseNameFor(mediaURI, resolvedURL string) string {
	source := resolvedURL
	if source == "" {
		source = mediaURI
	}
	if u, err := url.Parse(source); err == nil && u.Path != "" && u.Path != "/" {
		if name := path.Base(u.Path); name != "." && name != "/" {
			return name
		}
	}
	return "media"
}
