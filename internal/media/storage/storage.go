package storage

import (
	"context"
)

const TAG_METADATA_KEY = "tag"

// Asset is a stored media object addressable by a delivery URL
type Asset struct {
	// AssetID is the storage provider's identifier for the object
	AssetID string
	// URL is the primary delivery URL
	URL string
	// Variants maps variant names (public, thumbnail, hls, ...) to their URLs
	Variants map[string]string
	// Mime is the content type the asset is served as
	Mime string
}

// Provider stores processed media and serves it back by URL. Uploads carry a
// deterministic tag so a re-run of the same artwork finds the existing asset
// instead of uploading a duplicate.
//
//go:generate mockgen -source=storage.go -destination=../../mocks/storage_provider.go -package=mocks -mock_names=Provider=MockStorageProvider
type Provider interface {
	// UploadImage stores still-image bytes and returns the created asset
	UploadImage(ctx context.Context, data []byte, baseName, mime, tag string) (*Asset, error)

	// UploadVideo ingests a video from its source URL and waits for it to
	// become playable
	UploadVideo(ctx context.Context, sourceURL, tag string) (*Asset, error)

	// FindImageByTag returns the image asset previously uploaded under the
	// tag, or nil when none exists
	FindImageByTag(ctx context.Context, tag string) (*Asset, error)
}
