package store

import (
	"context"

	"github.com/artfolio/artwork-indexer/internal/domain"
)

// Store defines the datastore boundary. Persistence is an external
// collaborator; the indexer only speaks record-level upserts keyed by the
// identity tuple.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertArtwork inserts or replaces an artwork by (blockchain, contract,
	// token id)
	UpsertArtwork(ctx context.Context, artwork *domain.Artwork) error

	// UpsertCreator inserts or replaces a creator by address
	UpsertCreator(ctx context.Context, creator *domain.Creator) error

	// UpsertCollection inserts or replaces a collection by slug
	UpsertCollection(ctx context.Context, collection *domain.Collection) error

	// GetArtwork retrieves an artwork by identity tuple, nil when absent
	GetArtwork(ctx context.Context, blockchain domain.Blockchain, contractAddress, tokenID string) (*domain.Artwork, error)

	// ListArtworks returns all stored artworks
	ListArtworks(ctx context.Context) ([]*domain.Artwork, error)
}
