package store

import (
	"context"
	"sort"
	"sync"

	"github.com/artfolio/artwork-indexer/internal/domain"
)

// memoryStore is a threadsafe in-memory Store used by tests and the demo
// command
type memoryStore struct {
	mu          sync.RWMutex
	artworks    map[string]*domain.Artwork
	creators    map[string]*domain.Creator
	collections map[string]*domain.Collection
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		artworks:    make(map[string]*domain.Artwork),
		creators:    make(map[string]*domain.Creator),
		collections: make(map[string]*domain.Collection),
	}
}

// UpsertArtwork inserts or replaces an artwork by its identity tuple
func (s *memoryStore) UpsertArtwork(ctx context.Context, artwork *domain.Artwork) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *artwork
	s.artworks[artwork.Key()] = &copied
	return nil
}

// UpsertCreator inserts or replaces a creator by address
func (s *memoryStore) UpsertCreator(ctx context.Context, creator *domain.Creator) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *creator
	s.creators[creator.Address] = &copied
	return nil
}

// UpsertCollection inserts or replaces a collection by slug
func (s *memoryStore) UpsertCollection(ctx context.Context, collection *domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *collection
	s.collections[collection.Slug] = &copied
	return nil
}

// GetArtwork retrieves an artwork by identity tuple, nil when absent
func (s *memoryStore) GetArtwork(ctx context.Context, blockchain domain.Blockchain, contractAddress, tokenID string) (*domain.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	key := (&domain.Artwork{Blockchain: blockchain, ContractAddress: contractAddress, TokenID: tokenID}).Key()
	artwork, ok := s.artworks[key]
	if !ok {
		return nil, nil
	}

	copied := *artwork
	return &copied, nil
}

// ListArtworks returns all stored artworks in stable key order
func (s *memoryStore) ListArtworks(ctx context.Context) ([]*domain.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.artworks))
	for key := range s.artworks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	artworks := make([]*domain.Artwork, 0, len(keys))
	for _, key := range keys {
		copied := *s.artworks[key]
		artworks = append(artworks, &copied)
	}
	return artworks, nil
}
