package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudflare/cloudflare-go"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/logger"
)

const (
	// findByTagPageSize bounds each page of the tag lookup scan
	findByTagPageSize = 100
	// findByTagMaxPages bounds how far back the tag lookup scans; older
	// assets than this are re-uploaded rather than found
	findByTagMaxPages = 10
)

// cloudflareProvider implements Provider on Cloudflare Images and Stream
type cloudflareProvider struct {
	cfClient adapter.CloudflareClient
	config   config.CloudflareConfig
	rc       *cloudflare.ResourceContainer
}

// NewCloudflareProvider creates a storage provider backed by Cloudflare
// Images (stills) and Cloudflare Stream (video)
func NewCloudflareProvider(cfClient adapter.CloudflareClient, cfg config.CloudflareConfig) Provider {
	return &cloudflareProvider{
		cfClient: cfClient,
		config:   cfg,
		rc: &cloudflare.ResourceContainer{
			Level:      cloudflare.AccountRouteLevel,
			Identifier: cfg.AccountID,
		},
	}
}

// UploadImage stores still-image bytes in Cloudflare Images
func (p *cloudflareProvider) UploadImage(ctx context.Context, data []byte, baseName, mime, tag string) (*Asset, error) {
	filename := baseName
	if path.Ext(filename) == "" {
		filename += extensionForMime(mime)
	}

	logger.InfoCtx(ctx, "Uploading to Cloudflare Images",
		zap.String("filename", filename),
		zap.String("tag", tag),
		zap.Int("size", len(data)),
	)

	image, err := p.cfClient.UploadImage(ctx, p.rc, cloudflare.UploadImageParams{
		File:     io.NopCloser(bytes.NewReader(data)),
		Name:     filename,
		Metadata: map[string]interface{}{TAG_METADATA_KEY: tag},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	asset := p.buildImageAsset(&image, mime)

	logger.InfoCtx(ctx, "Uploaded to Cloudflare Images",
		zap.String("imageID", image.ID),
		zap.Int("variantCount", len(asset.Variants)),
	)

	return asset, nil
}

// FindImageByTag scans recently uploaded images for one carrying the tag
func (p *cloudflareProvider) FindImageByTag(ctx context.Context, tag string) (*Asset, error) {
	for page := 1; page <= findByTagMaxPages; page++ {
		images, err := p.cfClient.ListImages(ctx, p.rc, cloudflare.ListImagesParams{
			ResultInfo: cloudflare.ResultInfo{
				Page:    page,
				PerPage: findByTagPageSize,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list images: %w", err)
		}

		for i := range images {
			if imageTag, ok := images[i].Meta[TAG_METADATA_KEY].(string); ok && imageTag == tag {
				return p.buildImageAsset(&images[i], ""), nil
			}
		}

		if len(images) < findByTagPageSize {
			break
		}
	}

	return nil, nil
}

// UploadVideo ingests a video into Cloudflare Stream from its source URL and
// polls until it is playable
func (p *cloudflareProvider) UploadVideo(ctx context.Context, sourceURL, tag string) (*Asset, error) {
	logger.InfoCtx(ctx, "Uploading to Cloudflare Stream",
		zap.String("url", sourceURL),
		zap.String("tag", tag),
	)

	video, err := p.cfClient.UploadVideoFromURL(ctx, cloudflare.StreamUploadFromURLParameters{
		AccountID: p.config.AccountID,
		URL:       sourceURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	// Ingest is asynchronous; the playback URLs only appear once processing
	// finishes. If polling times out, surface what we have.
	videoDetails, err := p.waitForVideoReady(ctx, video.UID)
	if err != nil {
		logger.WarnCtx(ctx, "Video not ready in time, using partial details",
			zap.String("videoID", video.UID),
			zap.Error(err),
		)
		videoDetails = video
	}

	return p.buildVideoAsset(videoDetails), nil
}

// buildImageAsset converts a Cloudflare Image into an Asset. The public
// variant is preferred as the primary URL; any variant serves as fallback.
func (p *cloudflareProvider) buildImageAsset(image *cloudflare.Image, mime string) *Asset {
	variants := make(map[string]string)
	for _, variantURL := range image.Variants {
		if name := path.Base(variantURL); name != "" {
			variants[name] = variantURL
		}
	}

	url := variants["public"]
	if url == "" {
		for _, variantURL := range image.Variants {
			url = variantURL
			break
		}
	}

	return &Asset{
		AssetID:  image.ID,
		URL:      url,
		Variants: variants,
		Mime:     mime,
	}
}

// buildVideoAsset converts a Cloudflare StreamVideo into an Asset. The HLS
// manifest is the primary URL for adaptive playback.
func (p *cloudflareProvider) buildVideoAsset(video cloudflare.StreamVideo) *Asset {
	variants := make(map[string]string)
	if video.Playback.HLS != "" {
		variants["hls"] = video.Playback.HLS
	}
	if video.Playback.Dash != "" {
		variants["dash"] = video.Playback.Dash
	}
	if video.Thumbnail != "" {
		variants["thumbnail"] = video.Thumbnail
	}
	if video.Preview != "" {
		variants["preview"] = video.Preview
	}

	url := variants["hls"]
	if url == "" {
		url = variants["dash"]
	}

	return &Asset{
		AssetID:  video.UID,
		URL:      url,
		Variants: variants,
		Mime:     "application/x-mpegURL",
	}
}

// waitForVideoReady polls Cloudflare Stream until the video is ready, the
// processing fails permanently, or the backoff budget runs out
func (p *cloudflareProvider) waitForVideoReady(ctx context.Context, videoID string) (cloudflare.StreamVideo, error) {
	var videoDetails cloudflare.StreamVideo

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 5 * time.Minute
	b.Multiplier = 1.5
	b.RandomizationFactor = 0.5

	operation := func() error {
		video, err := p.cfClient.GetVideo(ctx, cloudflare.StreamParameters{
			AccountID: p.config.AccountID,
			VideoID:   videoID,
		})
		if err != nil {
			logger.WarnCtx(ctx, "Failed to fetch video details, retrying", zap.Error(err))
			return fmt.Errorf("failed to get video: %w", err)
		}

		videoDetails = video

		switch video.Status.State {
		case "ready":
			return nil

		case "error", "failed":
			return backoff.Permanent(fmt.Errorf("video processing failed: %s", video.Status.ErrorReasonText))

		default:
			logger.DebugCtx(ctx, "Video still processing",
				zap.String("videoID", videoID),
				zap.String("status", string(video.Status.State)),
			)
			return fmt.Errorf("video not ready yet: %s", video.Status.State)
		}
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return videoDetails, fmt.Errorf("waiting for video to be ready: %w", err)
	}

	return videoDetails, nil
}

// extensionForMime returns a filename extension for a mime type
func extensionForMime(mime string) string {
	if mtype := mimetype.Lookup(mime); mtype != nil {
		if ext := mtype.Extension(); ext != "" {
			return ext
		}
	}

	mainType := strings.TrimSpace(strings.Split(mime, ";")[0])
	if strings.HasPrefix(mainType, "video/") {
		return ".mp4"
	}
	if strings.HasPrefix(mainType, "image/") {
		return ".jpg"
	}
	return ""
}
