package uri

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
)

// Config holds gateway configuration for the URI resolver
type Config struct {
	// IPFSGateways is the ordered list of IPFS gateways to try
	IPFSGateways []string
	// ArweaveGateway is the single canonical Arweave gateway
	ArweaveGateway string
	// GatewayTimeout bounds each individual gateway attempt
	GatewayTimeout time.Duration
	// ArchiveTimeout bounds archival-storage fetches, which run slower
	ArchiveTimeout time.Duration
}

// Resource is the fetched content of one URI
type Resource struct {
	Data []byte
	// ResolvedURL is the concrete URL the bytes came from; empty for inline
	// data URIs
	ResolvedURL string
	// MimeHint is the media type declared by the URI itself, if any. Content
	// sniffing remains authoritative.
	MimeHint string
}

// Resolver fetches the bytes behind a media URI, resolving content-addressed
// references through gateway fallback
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockURIResolver
type Resolver interface {
	// Fetch retrieves the content behind the URI. Gateways are tried in their
	// configured order, each attempt with its own timeout; failure across all
	// gateways is a terminal fetch error.
	Fetch(ctx context.Context, uri string) (*Resource, error)

	// Peek retrieves only a sniffable prefix of the content plus the concrete
	// URL it resolved to. Content-addressed references are probed with HEAD
	// to pick a serving gateway before the bounded read.
	Peek(ctx context.Context, uri string) (*Resource, error)
}

type resolver struct {
	httpClient adapter.HTTPClient
	config     Config
}

// NewResolver creates a URI resolver
func NewResolver(httpClient adapter.HTTPClient, config Config) Resolver {
	if config.GatewayTimeout <= 0 {
		config.GatewayTimeout = 15 * time.Second
	}
	if config.ArchiveTimeout <= 0 {
		config.ArchiveTimeout = 60 * time.Second
	}
	return &resolver{
		httpClient: httpClient,
		config:     config,
	}
}

// Fetch retrieves the content behind the URI
func (r *resolver) Fetch(ctx context.Context, uri string) (*Resource, error) {
	switch Classify(uri) {
	case KindData:
		data, mediaType, err := DecodeDataURI(uri)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		return &Resource{Data: data, MimeHint: mediaType}, nil

	case KindArweave:
		return r.fetchArweave(ctx, strings.TrimPrefix(uri, "ar://"))

	case KindIPFS:
		cid, ok := ExtractCID(uri)
		if !ok {
			return nil, fmt.Errorf("%w: no CID in %s", domain.ErrFetchFailed, uri)
		}
		return r.fetchIPFS(ctx, cid)

	case KindHTTP:
		return r.fetchDirect(ctx, uri)

	default:
		return nil, fmt.Errorf("%w: unsupported URI scheme: %s", domain.ErrFetchFailed, uri)
	}
}

// peekLimit is how many leading bytes Peek reads, enough for content sniffing
const peekLimit = 3072

// Peek retrieves a sniffable prefix of the content plus its resolved URL
func (r *resolver) Peek(ctx context.Context, uri string) (*Resource, error) {
	switch Classify(uri) {
	case KindData:
		data, mediaType, err := DecodeDataURI(uri)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		return &Resource{Data: data, MimeHint: mediaType}, nil

	case KindArweave:
		txID := strings.TrimPrefix(uri, "ar://")
		url := fmt.Sprintf("%s/%s", strings.TrimSuffix(r.config.ArweaveGateway, "/"), txID)
		return r.peekURL(ctx, url, r.config.ArchiveTimeout)

	case KindIPFS:
		cid, ok := ExtractCID(uri)
		if !ok {
			return nil, fmt.Errorf("%w: no CID in %s", domain.ErrFetchFailed, uri)
		}
		url, err := r.resolveIPFSGateway(ctx, cid)
		if err != nil {
			return nil, err
		}
		return r.peekURL(ctx, url, r.config.GatewayTimeout)

	case KindHTTP:
		return r.peekURL(ctx, uri, r.config.GatewayTimeout)

	default:
		return nil, fmt.Errorf("%w: unsupported URI scheme: %s", domain.ErrFetchFailed, uri)
	}
}

// resolveIPFSGateway probes the configured gateways in order with HEAD and
// returns the URL of the first one serving the CID
func (r *resolver) resolveIPFSGateway(ctx context.Context, cid string) (string, error) {
	var lastErr error
	for _, gateway := range r.config.IPFSGateways {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		url := fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(gateway, "/"), cid)

		attemptCtx, cancel := context.WithTimeout(ctx, r.config.GatewayTimeout)
		resp, err := r.httpClient.Head(attemptCtx, url)
		cancel()
		if err != nil {
			lastErr = err
			logger.WarnCtx(ctx, "IPFS gateway probe failed",
				zap.String("gateway", gateway),
				zap.String("cid", cid),
				zap.Error(err),
			)
			continue
		}
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "failed to close response body",
				zap.Error(err),
				zap.String("url", url),
			)
		}

		if resp.StatusCode == http.StatusOK {
			return url, nil
		}
		lastErr = fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	return "", fmt.Errorf("%w: all IPFS gateways failed for CID %s: %v", domain.ErrFetchFailed, cid, lastErr)
}

// peekURL reads at most peekLimit bytes from the URL
func (r *resolver) peekURL(ctx context.Context, url string, timeout time.Duration) (*Resource, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := r.httpClient.GetPartialContent(attemptCtx, url, peekLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, url, err)
	}

	return &Resource{Data: data, ResolvedURL: url}, nil
}

// fetchIPFS walks the configured gateways in order. The first success wins;
// each attempt gets its own timeout so one stalled gateway cannot eat the
// whole budget.
func (r *resolver) fetchIPFS(ctx context.Context, cid string) (*Resource, error) {
	if len(r.config.IPFSGateways) == 0 {
		return nil, fmt.Errorf("%w: no IPFS gateways configured", domain.ErrFetchFailed)
	}

	var lastErr error
	for _, gateway := range r.config.IPFSGateways {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		url := fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(gateway, "/"), cid)

		attemptCtx, cancel := context.WithTimeout(ctx, r.config.GatewayTimeout)
		data, err := r.httpClient.GetBytes(attemptCtx, url, nil)
		cancel()

		if err != nil {
			lastErr = err
			logger.WarnCtx(ctx, "IPFS gateway attempt failed",
				zap.String("gateway", gateway),
				zap.String("cid", cid),
				zap.Error(err),
			)
			continue
		}

		return &Resource{Data: data, ResolvedURL: url}, nil
	}

	return nil, fmt.Errorf("%w: all IPFS gateways failed for CID %s: %v", domain.ErrFetchFailed, cid, lastErr)
}

// fetchArweave fetches from the single canonical archival gateway with the
// longer archive timeout
func (r *resolver) fetchArweave(ctx context.Context, txID string) (*Resource, error) {
	if r.config.ArweaveGateway == "" {
		return nil, fmt.Errorf("%w: no Arweave gateway configured", domain.ErrFetchFailed)
	}

	url := fmt.Sprintf("%s/%s", strings.TrimSuffix(r.config.ArweaveGateway, "/"), txID)

	attemptCtx, cancel := context.WithTimeout(ctx, r.config.ArchiveTimeout)
	defer cancel()

	data, err := r.httpClient.GetBytes(attemptCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: arweave fetch for %s: %v", domain.ErrFetchFailed, txID, err)
	}

	return &Resource{Data: data, ResolvedURL: url}, nil
}

// fetchDirect fetches an already-resolved http(s) URL as-is
func (r *resolver) fetchDirect(ctx context.Context, url string) (*Resource, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.config.GatewayTimeout)
	defer cancel()

	data, err := r.httpClient.GetBytes(attemptCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, url, err)
	}

	return &Resource{Data: data, ResolvedURL: url}, nil
}
