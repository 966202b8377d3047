package transformer

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/providers/chainindexer"
	"github.com/artfolio/artwork-indexer/internal/providers/marketplace"
	"github.com/artfolio/artwork-indexer/internal/registry"
)

// Transformer maps raw provider records into canonical artwork records.
// Identity is never fabricated: records lacking a contract address or token id
// fail with MissingRequiredFieldsError. Beyond the explicit enrichment lookups
// the transformer performs no I/O.
//
//go:generate mockgen -source=transformer.go -destination=../mocks/transformer.go -package=mocks -mock_names=Transformer=MockTransformer
type Transformer interface {
	// FromMarketplace maps a marketplace NFT record to a canonical artwork
	FromMarketplace(ctx context.Context, nft *marketplace.NFT) (*domain.Artwork, error)

	// FromChainIndexer maps a chain indexer token to a canonical artwork
	FromChainIndexer(ctx context.Context, token *chainindexer.Token) (*domain.Artwork, error)
}

type transformer struct {
	marketplaceClient  marketplace.Client
	chainIndexerClient chainindexer.Client
	registry           registry.PlatformRegistry
}

// NewTransformer creates a transformer. The provider clients are used for
// best-effort collection and creator enrichment only.
func NewTransformer(marketplaceClient marketplace.Client, chainIndexerClient chainindexer.Client, platformRegistry registry.PlatformRegistry) Transformer {
	return &transformer{
		marketplaceClient:  marketplaceClient,
		chainIndexerClient: chainIndexerClient,
		registry:           platformRegistry,
	}
}

// mintDateStrategy is one ordered attempt at extracting a mint timestamp.
// Strategies are evaluated in priority order; a value that fails to parse is
// logged and discarded, never propagated. "Last updated" timestamps are not
// valid strategies.
type mintDateStrategy struct {
	name  string
	value *string
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// resolveMintDate walks the strategies in order and returns the first value
// that parses as a date
func resolveMintDate(ctx context.Context, strategies []mintDateStrategy) *time.Time {
	for _, s := range strategies {
		if s.value == nil || *s.value == "" {
			continue
		}

		parsed, err := parseTimestamp(*s.value)
		if err != nil {
			logger.WarnCtx(ctx, "Discarding unparseable mint date candidate",
				zap.String("strategy", s.name),
				zap.String("value", *s.value),
			)
			continue
		}
		return parsed
	}
	return nil
}

func parseTimestamp(value string) (*time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// pickThumbnail populates the thumbnail only when it is distinct from the
// chosen primary image and is not a known platform placeholder
func (t *transformer) pickThumbnail(candidate string, imageURL string) string {
	if candidate == "" || candidate == imageURL {
		return ""
	}
	if t.registry.IsPlaceholderThumbnail(candidate) {
		return ""
	}
	return candidate
}

// isInteractiveMime reports whether the mime denotes content that must be
// executed rather than displayed
func isInteractiveMime(mime string) bool {
	switch {
	case strings.HasPrefix(mime, "text/html"),
		strings.HasPrefix(mime, "application/x-directory"),
		strings.HasPrefix(mime, "application/javascript"),
		strings.HasPrefix(mime, "model/"):
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
