package indexing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/media"
	"github.com/artfolio/artwork-indexer/internal/providers/chainindexer"
	"github.com/artfolio/artwork-indexer/internal/providers/marketplace"
	"github.com/artfolio/artwork-indexer/internal/store"
	"github.com/artfolio/artwork-indexer/internal/transformer"
)

// jobState is the lifecycle phase of one wallet indexing job
type jobState string

const (
	stateStart          jobState = "start"
	statePaginating     jobState = "paginating"
	stateAccumulating   jobState = "accumulating"
	stateBackoffWaiting jobState = "backoff_waiting"
	stateDone           jobState = "done"
	stateAborted        jobState = "aborted"
)

// Orchestrator drives wallet indexing jobs: paginate a provider, transform
// each record, resolve its media, persist, accumulate. A job never raises
// past its own boundary; the worst outcome is partial results plus a logged
// reason.
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// IndexWallet indexes every token a wallet owns or created on one chain.
	// Returns whatever was accumulated, even when the job aborts early.
	IndexWallet(ctx context.Context, walletAddress string, blockchain domain.Blockchain, mode domain.IndexMode) ([]*domain.Artwork, error)

	// GetSingleItem indexes one token. Missing tokens yield (nil, nil).
	GetSingleItem(ctx context.Context, contractAddress, tokenID string, blockchain domain.Blockchain) (*domain.Artwork, error)
}

type orchestrator struct {
	marketplaceClient  marketplace.Client
	chainIndexerClient chainindexer.Client
	transformer        transformer.Transformer
	media              media.Pipeline
	store              store.Store
	config             config.IndexingConfig
}

// NewOrchestrator creates an indexing orchestrator
func NewOrchestrator(
	marketplaceClient marketplace.Client,
	chainIndexerClient chainindexer.Client,
	recordTransformer transformer.Transformer,
	mediaPipeline media.Pipeline,
	datastore store.Store,
	cfg config.IndexingConfig,
) Orchestrator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 200
	}
	if cfg.MaxConsecutiveRetries <= 0 {
		cfg.MaxConsecutiveRetries = 3
	}

	return &orchestrator{
		marketplaceClient:  marketplaceClient,
		chainIndexerClient: chainIndexerClient,
		transformer:        recordTransformer,
		media:              mediaPipeline,
		store:              datastore,
		config:             cfg,
	}
}

// jobProgress is the mutable bookkeeping of one running job
type jobProgress struct {
	id                  string
	state               jobState
	pages               int
	consecutiveFailures int
	artworks            []*domain.Artwork
}

// IndexWallet indexes every token a wallet owns or created on one chain
func (o *orchestrator) IndexWallet(ctx context.Context, walletAddress string, blockchain domain.Blockchain, mode domain.IndexMode) ([]*domain.Artwork, error) {
	if walletAddress == "" {
		return nil, fmt.Errorf("wallet address cannot be empty")
	}
	if !domain.IsValidBlockchain(blockchain) {
		return nil, fmt.Errorf("unsupported blockchain: %s", blockchain)
	}
	if mode != domain.IndexModeOwned && mode != domain.IndexModeCreated {
		return nil, fmt.Errorf("unsupported index mode: %s", mode)
	}

	progress := &jobProgress{
		id:    uuid.NewString(),
		state: stateStart,
	}

	logger.InfoCtx(ctx, "Starting wallet indexing job",
		zap.String("jobID", progress.id),
		zap.String("wallet", walletAddress),
		zap.String("blockchain", string(blockchain)),
		zap.String("mode", string(mode)),
	)

	var err error
	if blockchain == domain.BlockchainTezos {
		err = o.paginateChainIndexer(ctx, progress, walletAddress, mode)
	} else {
		err = o.paginateMarketplace(ctx, progress, walletAddress, mode)
	}

	logger.InfoCtx(ctx, "Wallet indexing job finished",
		zap.String("jobID", progress.id),
		zap.String("state", string(progress.state)),
		zap.Int("pages", progress.pages),
		zap.Int("artworks", len(progress.artworks)),
	)

	return progress.artworks, err
}

// paginateMarketplace runs the job state machine over cursor pagination
func (o *orchestrator) paginateMarketplace(ctx context.Context, progress *jobProgress, walletAddress string, mode domain.IndexMode) error {
	progress.state = statePaginating
	cursor := ""

	for progress.state == statePaginating {
		if err := ctx.Err(); err != nil {
			progress.state = stateAborted
			return err
		}
		if progress.pages >= o.config.MaxPages {
			o.tripCircuitBreaker(ctx, progress)
			return nil
		}

		nfts, next, err := o.marketplaceClient.ListNFTs(ctx, walletAddress, mode, o.config.PageSize, cursor)
		if err != nil {
			if !o.retrySamePage(ctx, progress, err) {
				return nil
			}
			continue
		}

		progress.state = stateAccumulating
		progress.consecutiveFailures = 0
		for i := range nfts {
			if ctx.Err() != nil {
				progress.state = stateAborted
				return ctx.Err()
			}
			o.accumulate(ctx, progress, func() (*domain.Artwork, error) {
				return o.transformer.FromMarketplace(ctx, &nfts[i])
			})
		}
		progress.pages++

		cursor = next
		if cursor == "" {
			progress.state = stateDone
		} else {
			progress.state = statePaginating
		}
	}

	return nil
}

// paginateChainIndexer runs the job state machine over offset pagination
func (o *orchestrator) paginateChainIndexer(ctx context.Context, progress *jobProgress, walletAddress string, mode domain.IndexMode) error {
	progress.state = statePaginating
	offset := 0

	for progress.state == statePaginating {
		if err := ctx.Err(); err != nil {
			progress.state = stateAborted
			return err
		}
		if progress.pages >= o.config.MaxPages {
			o.tripCircuitBreaker(ctx, progress)
			return nil
		}

		tokens, hasMore, err := o.chainIndexerClient.ListTokens(ctx, walletAddress, mode, o.config.PageSize, offset)
		if err != nil {
			if !o.retrySamePage(ctx, progress, err) {
				return nil
			}
			continue
		}

		progress.state = stateAccumulating
		progress.consecutiveFailures = 0
		for i := range tokens {
			if ctx.Err() != nil {
				progress.state = stateAborted
				return ctx.Err()
			}
			o.accumulate(ctx, progress, func() (*domain.Artwork, error) {
				return o.transformer.FromChainIndexer(ctx, &tokens[i])
			})
		}
		progress.pages++

		offset += o.config.PageSize
		if hasMore {
			progress.state = statePaginating
		} else {
			progress.state = stateDone
		}
	}

	return nil
}

// retrySamePage decides whether a failed page fetch is retried. The cursor is
// never advanced on failure; pacing for the retry lives in the provider
// client's limiter, not here. Returns false when the job aborts.
func (o *orchestrator) retrySamePage(ctx context.Context, progress *jobProgress, err error) bool {
	progress.state = stateBackoffWaiting
	progress.consecutiveFailures++

	if !isRetryablePageError(err) || progress.consecutiveFailures > o.config.MaxConsecutiveRetries {
		logger.ErrorCtx(ctx, fmt.Errorf("aborting job with partial results: %w", err),
			zap.String("jobID", progress.id),
			zap.Int("consecutiveFailures", progress.consecutiveFailures),
			zap.Int("accumulated", len(progress.artworks)),
		)
		progress.state = stateAborted
		return false
	}

	logger.WarnCtx(ctx, "Page fetch failed, retrying same page",
		zap.String("jobID", progress.id),
		zap.Int("consecutiveFailures", progress.consecutiveFailures),
		zap.Error(err),
	)
	progress.state = statePaginating
	return true
}

// tripCircuitBreaker aborts a job that paginated past the hard page bound
func (o *orchestrator) tripCircuitBreaker(ctx context.Context, progress *jobProgress) {
	logger.ErrorCtx(ctx, errors.New("hard page limit reached, aborting job"),
		zap.String("jobID", progress.id),
		zap.Int("maxPages", o.config.MaxPages),
		zap.Int("accumulated", len(progress.artworks)),
	)
	progress.state = stateAborted
}

// accumulate transforms one record, resolves its media, persists it, and
// appends it. Record failures are contained here; they never abort the page.
func (o *orchestrator) accumulate(ctx context.Context, progress *jobProgress, transform func() (*domain.Artwork, error)) {
	artwork, err := transform()
	if err != nil {
		logger.WarnCtx(ctx, "Skipping record",
			zap.String("jobID", progress.id),
			zap.Error(err),
		)
		return
	}
	if artwork == nil {
		return
	}

	o.resolveArtworkMedia(ctx, artwork)
	o.persist(ctx, artwork)
	progress.artworks = append(progress.artworks, artwork)
}

// resolveArtworkMedia runs the media pipeline for the artwork's still image
// and playable asset. A failed media URI leaves that field empty; the
// artwork itself proceeds.
func (o *orchestrator) resolveArtworkMedia(ctx context.Context, artwork *domain.Artwork) {
	if o.media == nil {
		return
	}

	if artwork.ImageURL != "" {
		result, err := o.media.ResolveMedia(ctx, artwork.ImageURL, artwork.Key()+":image")
		if err != nil {
			logger.WarnCtx(ctx, "Image resolution failed, leaving field empty",
				zap.String("artwork", artwork.Key()),
				zap.String("uri", artwork.ImageURL),
				zap.Error(err),
			)
			artwork.ImageURL = ""
		} else {
			artwork.ImageURL = result.ResolvedURL
			if artwork.Dimensions == nil {
				artwork.Dimensions = result.Dimensions
			}
			if artwork.Mime == "" {
				artwork.Mime = result.Mime
			}
		}
	}

	// A generator URL doubles as the animation URL for interactive pieces;
	// executable content is referenced, not fetched
	if artwork.AnimationURL != "" && artwork.AnimationURL != artwork.GeneratorURL {
		result, err := o.media.ResolveMedia(ctx, artwork.AnimationURL, artwork.Key()+":animation")
		if err != nil {
			logger.WarnCtx(ctx, "Animation resolution failed, leaving field empty",
				zap.String("artwork", artwork.Key()),
				zap.String("uri", artwork.AnimationURL),
				zap.Error(err),
			)
			artwork.AnimationURL = ""
		} else {
			artwork.AnimationURL = result.ResolvedURL
			if artwork.Dimensions == nil {
				artwork.Dimensions = result.Dimensions
			}
			if artwork.Mime == "" {
				artwork.Mime = result.Mime
			}
		}
	}
}

// persist upserts the artwork and its related records. Store failures are
// logged, not raised; the artwork still counts toward the job's results.
func (o *orchestrator) persist(ctx context.Context, artwork *domain.Artwork) {
	if o.store == nil {
		return
	}

	if artwork.Creator != nil {
		if err := o.store.UpsertCreator(ctx, artwork.Creator); err != nil {
			logger.WarnCtx(ctx, "Failed to upsert creator", zap.String("address", artwork.Creator.Address), zap.Error(err))
		}
	}
	if err := o.store.UpsertCollection(ctx, &artwork.Collection); err != nil {
		logger.WarnCtx(ctx, "Failed to upsert collection", zap.String("slug", artwork.Collection.Slug), zap.Error(err))
	}
	if err := o.store.UpsertArtwork(ctx, artwork); err != nil {
		logger.WarnCtx(ctx, "Failed to upsert artwork", zap.String("artwork", artwork.Key()), zap.Error(err))
	}
}

// GetSingleItem indexes one token
func (o *orchestrator) GetSingleItem(ctx context.Context, contractAddress, tokenID string, blockchain domain.Blockchain) (*domain.Artwork, error) {
	if contractAddress == "" || tokenID == "" {
		return nil, fmt.Errorf("contract address and token id are required")
	}

	var artwork *domain.Artwork
	var err error

	if blockchain == domain.BlockchainTezos {
		var token *chainindexer.Token
		token, err = o.chainIndexerClient.GetToken(ctx, contractAddress, tokenID)
		if err != nil || token == nil {
			return nil, err
		}
		artwork, err = o.transformer.FromChainIndexer(ctx, token)
	} else {
		var nft *marketplace.NFT
		nft, err = o.marketplaceClient.GetNFT(ctx, contractAddress, tokenID)
		if err != nil || nft == nil {
			return nil, err
		}
		artwork, err = o.transformer.FromMarketplace(ctx, nft)
	}
	if err != nil {
		return nil, err
	}

	o.resolveArtworkMedia(ctx, artwork)
	o.persist(ctx, artwork)
	return artwork, nil
}

// isRetryablePageError reports whether a page fetch failure warrants retrying
// the same page. Rate limiting and transient transport failures retry;
// malformed or permanently rejected requests abort.
func isRetryablePageError(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrRateLimitExhausted) {
		return true
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrMalformedRecord) {
		return false
	}

	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}

	// Non-HTTP network errors (timeouts, resets) are transient
	return true
}
