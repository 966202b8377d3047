package marketplace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/ratelimit"
)

const PROVIDER_NAME = "marketplace"

var ErrNoAPIKey = errors.New("no API key provided")

// NFT represents a raw NFT record from the marketplace API
type NFT struct {
	Identifier    string  `json:"identifier"`
	Collection    string  `json:"collection"`
	Contract      string  `json:"contract"`
	TokenStandard string  `json:"token_standard"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	ImageURL      *string `json:"image_url"`
	DisplayImage  *string `json:"display_image_url"`
	AnimationURL  *string `json:"animation_url"`
	DisplayAnim   *string `json:"display_animation_url"`
	MetadataURL   *string `json:"metadata_url"`
	UpdatedAt     *string `json:"updated_at"`
	IsDisabled    bool    `json:"is_disabled"`
	Traits        []Trait `json:"traits"`
	Creator       *string `json:"creator"`
	Owners        []Owner `json:"owners"`
}

// Trait represents a trait/attribute of an NFT
type Trait struct {
	TraitType   string      `json:"trait_type"`
	DisplayType *string     `json:"display_type"`
	MaxValue    interface{} `json:"max_value"`
	Value       interface{} `json:"value"`
}

// Owner represents one holder of an NFT
type Owner struct {
	Address  string `json:"address"`
	Quantity int    `json:"quantity"`
}

// Collection represents collection metadata from the marketplace API
type Collection struct {
	Slug            string     `json:"collection"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	ImageURL        string     `json:"image_url"`
	BannerImageURL  string     `json:"banner_image_url"`
	Owner           string     `json:"owner"`
	ProjectURL      string     `json:"project_url"`
	DiscordURL      string     `json:"discord_url"`
	TelegramURL     string     `json:"telegram_url"`
	TwitterUsername string     `json:"twitter_username"`
	Contracts       []Contract `json:"contracts"`
	TotalSupply     *int       `json:"total_supply"`
	CreatedDate     *string    `json:"created_date"`
}

// Contract identifies one on-chain contract backing a collection
type Contract struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

// Account represents a creator profile from the marketplace API
type Account struct {
	Address         string            `json:"address"`
	Username        string            `json:"username"`
	ProfileImageURL string            `json:"profile_image_url"`
	Website         string            `json:"website"`
	Bio             string            `json:"bio"`
	SocialAccounts  []SocialMediaLink `json:"social_media_accounts"`
}

// SocialMediaLink is one entry of a profile's social accounts
type SocialMediaLink struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
}

// ListResponse is the paginated list envelope
type ListResponse struct {
	NFTs []NFT  `json:"nfts"`
	Next string `json:"next"`
}

// NFTResponse is the single-NFT envelope
type NFTResponse struct {
	NFT    NFT      `json:"nft"`
	Errors []string `json:"errors,omitempty"`
}

// Client defines the interface for marketplace API operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/marketplace_client.go -package=mocks -mock_names=Client=MockMarketplaceClient
type Client interface {
	// ListNFTs fetches one page of a wallet's tokens. The returned cursor is
	// an opaque continuation token; empty means the listing is complete.
	ListNFTs(ctx context.Context, walletAddress string, mode domain.IndexMode, pageSize int, cursor string) ([]NFT, string, error)

	// GetNFT fetches one token's metadata. Missing tokens yield (nil, nil).
	GetNFT(ctx context.Context, contractAddress, tokenID string) (*NFT, error)

	// GetCollection fetches collection metadata by slug. Missing collections
	// yield (nil, nil).
	GetCollection(ctx context.Context, slug string) (*Collection, error)

	// GetAccount fetches a creator profile. Missing accounts yield (nil, nil).
	GetAccount(ctx context.Context, address string) (*Account, error)
}

// MarketplaceClient implements the marketplace REST client
type MarketplaceClient struct {
	httpClient adapter.HTTPClient
	limiter    ratelimit.Limiter
	apiURL     string
	apiKey     string
	json       adapter.JSON
}

// NewClient creates a new marketplace client
func NewClient(httpClient adapter.HTTPClient, limiter ratelimit.Limiter, apiURL string, apiKey string, json adapter.JSON) Client {
	return &MarketplaceClient{
		httpClient: httpClient,
		limiter:    limiter,
		apiURL:     apiURL,
		apiKey:     apiKey,
		json:       json,
	}
}

// ListNFTs fetches one page of a wallet's tokens
func (c *MarketplaceClient) ListNFTs(ctx context.Context, walletAddress string, mode domain.IndexMode, pageSize int, cursor string) ([]NFT, string, error) {
	if c.apiKey == "" {
		return nil, "", ErrNoAPIKey
	}

	// Owned and created token sets live on distinct endpoints
	var endpoint string
	switch mode {
	case domain.IndexModeCreated:
		endpoint = fmt.Sprintf("%s/accounts/%s/nfts/created", c.apiURL, strings.ToLower(walletAddress))
	default:
		endpoint = fmt.Sprintf("%s/chain/ethereum/account/%s/nfts", c.apiURL, strings.ToLower(walletAddress))
	}

	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", pageSize))
	if cursor != "" {
		query.Set("next", cursor)
	}

	respBody, err := c.get(ctx, endpoint+"?"+query.Encode())
	if err != nil {
		return nil, "", fmt.Errorf("failed to list NFTs for %s: %w", walletAddress, err)
	}

	var response ListResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, "", fmt.Errorf("%w: list response: %v", domain.ErrMalformedRecord, err)
	}

	return response.NFTs, response.Next, nil
}

// GetNFT fetches one token's metadata
func (c *MarketplaceClient) GetNFT(ctx context.Context, contractAddress, tokenID string) (*NFT, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	endpoint := fmt.Sprintf("%s/chain/ethereum/contract/%s/nfts/%s",
		c.apiURL,
		strings.ToLower(contractAddress),
		tokenID,
	)

	respBody, err := c.get(ctx, endpoint)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch NFT %s/%s: %w", contractAddress, tokenID, err)
	}

	var response NFTResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("%w: NFT response: %v", domain.ErrMalformedRecord, err)
	}

	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("marketplace API errors: %v", response.Errors)
	}

	return &response.NFT, nil
}

// GetCollection fetches collection metadata by slug
func (c *MarketplaceClient) GetCollection(ctx context.Context, slug string) (*Collection, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	respBody, err := c.get(ctx, fmt.Sprintf("%s/collections/%s", c.apiURL, slug))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch collection %s: %w", slug, err)
	}

	var collection Collection
	if err := c.json.Unmarshal(respBody, &collection); err != nil {
		return nil, fmt.Errorf("%w: collection response: %v", domain.ErrMalformedRecord, err)
	}

	return &collection, nil
}

// GetAccount fetches a creator profile
func (c *MarketplaceClient) GetAccount(ctx context.Context, address string) (*Account, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	respBody, err := c.get(ctx, fmt.Sprintf("%s/accounts/%s", c.apiURL, strings.ToLower(address)))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", address, err)
	}

	var account Account
	if err := c.json.Unmarshal(respBody, &account); err != nil {
		return nil, fmt.Errorf("%w: account response: %v", domain.ErrMalformedRecord, err)
	}

	return &account, nil
}

// get performs one authenticated request through the rate limiter
func (c *MarketplaceClient) get(ctx context.Context, url string) ([]byte, error) {
	headers := map[string]string{
		"X-API-KEY": c.apiKey,
	}

	return ratelimit.Execute(ctx, c.limiter, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, url, headers)
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || adapter.IsStatus(err, http.StatusNotFound)
}
