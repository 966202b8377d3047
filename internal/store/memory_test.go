package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/store"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func testArtwork(tokenID string) *domain.Artwork {
	return &domain.Artwork{
		ContractAddress: "0x059edd72cd353df5106d2b9cc5ab83a52287ac3a",
		TokenID:         tokenID,
		Blockchain:      domain.BlockchainEthereum,
		Title:           "Artwork " + tokenID,
		Supply:          1,
	}
}

func TestMemoryStore_UpsertAndGetArtwork(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.UpsertArtwork(ctx, testArtwork("1")))

	got, err := s.GetArtwork(ctx, domain.BlockchainEthereum, "0x059edd72cd353df5106d2b9cc5ab83a52287ac3a", "1")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "Artwork 1", got.Title)
}

func TestMemoryStore_GetArtwork_Missing(t *testing.T) {
	s := store.NewMemoryStore()

	got, err := s.GetArtwork(context.Background(), domain.BlockchainEthereum, "0xabc", "404")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_UpsertIsIdempotent(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	first := testArtwork("1")
	assert.NoError(t, s.UpsertArtwork(ctx, first))

	updated := testArtwork("1")
	updated.Title = "Renamed"
	assert.NoError(t, s.UpsertArtwork(ctx, updated))

	artworks, err := s.ListArtworks(ctx)
	assert.NoError(t, err)
	assert.Len(t, artworks, 1)
	assert.Equal(t, "Renamed", artworks[0].Title)
}

func TestMemoryStore_ListArtworks_StableOrder(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.UpsertArtwork(ctx, testArtwork("2")))
	assert.NoError(t, s.UpsertArtwork(ctx, testArtwork("1")))

	artworks, err := s.ListArtworks(ctx)
	assert.NoError(t, err)
	assert.Len(t, artworks, 2)
	assert.Equal(t, "1", artworks[0].TokenID)
	assert.Equal(t, "2", artworks[1].TokenID)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.UpsertArtwork(ctx, testArtwork("1")))

	got, err := s.GetArtwork(ctx, domain.BlockchainEthereum, "0x059edd72cd353df5106d2b9cc5ab83a52287ac3a", "1")
	assert.NoError(t, err)
	got.Title = "Mutated"

	again, err := s.GetArtwork(ctx, domain.BlockchainEthereum, "0x059edd72cd353df5106d2b9cc5ab83a52287ac3a", "1")
	assert.NoError(t, err)
	assert.Equal(t, "Artwork 1", again.Title)
}

func TestMemoryStore_UpsertCreatorAndCollection(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.UpsertCreator(ctx, &domain.Creator{Address: "0xartist", Username: "artist"}))
	assert.NoError(t, s.UpsertCollection(ctx, &domain.Collection{Slug: "squiggles", Title: "Chromie Squiggle"}))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := store.NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.UpsertArtwork(ctx, testArtwork("1")))
}
