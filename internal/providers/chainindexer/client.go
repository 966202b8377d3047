package chainindexer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/ratelimit"
)

const PROVIDER_NAME = "chain_indexer"

// WrappedTezosContract wraps the chain's native asset as an FA2 token. Its
// tokens are not artworks and are excluded at the query level so they never
// reach the transformer.
const WrappedTezosContract = "KT1TjnZYs5CGLbmV6yuW169P8Pnr9BiVwwjz"

// Token represents a raw token record from the chain indexer GraphQL API
type Token struct {
	TokenID      string                 `json:"token_id"`
	FaContract   string                 `json:"fa_contract"`
	Name         *string                `json:"name"`
	Description  *string                `json:"description"`
	DisplayURI   *string                `json:"display_uri"`
	ArtifactURI  *string                `json:"artifact_uri"`
	ThumbnailURI *string                `json:"thumbnail_uri"`
	Mime         *string                `json:"mime"`
	Symbol       *string                `json:"symbol"`
	Supply       int                    `json:"supply"`
	Dimensions   map[string]interface{} `json:"dimensions"`
	Attributes   []TokenAttribute       `json:"attributes"`
	Metadata     *string                `json:"metadata"`
	Timestamp    *string                `json:"timestamp"`
	Creators     []TokenCreator         `json:"creators"`
	Fa           *Fa                    `json:"fa"`
}

// TokenAttribute is one nested attribute entry
type TokenAttribute struct {
	Attribute AttributeDetail `json:"attribute"`
}

// AttributeDetail is the name/value pair inside an attribute entry
type AttributeDetail struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TokenCreator represents a creator/artist reference on a token
type TokenCreator struct {
	CreatorAddress string  `json:"creator_address"`
	Holder         *Holder `json:"holder"`
}

// Holder represents a wallet profile known to the indexer
type Holder struct {
	Address     string  `json:"address"`
	Alias       *string `json:"alias"`
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
	Website     *string `json:"website"`
	Twitter     *string `json:"twitter"`
}

// Fa represents contract-level (collection) metadata
type Fa struct {
	Contract    string  `json:"contract"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Logo        *string `json:"logo"`
	Website     *string `json:"website"`
	TwitterURL  *string `json:"twitter"`
	FloorPrice  *int64  `json:"floor_price"`
	Items       *int    `json:"items"`
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query         string      `json:"query"`
	Variables     interface{} `json:"variables"`
	OperationName string      `json:"operationName"`
}

// tokenFields is the selection set shared by every token query
const tokenFields = `
    token_id
    fa_contract
    name
    description
    display_uri
    artifact_uri
    thumbnail_uri
    mime
    symbol
    supply
    dimensions
    metadata
    timestamp
    attributes {
      attribute {
        name
        value
      }
    }
    creators {
      creator_address
      holder {
        address
        alias
        description
        logo
        website
        twitter
      }
    }
    fa {
      contract
      name
      description
      logo
      website
      twitter
      floor_price
      items
    }`

// Client defines the interface for chain indexer operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/chainindexer_client.go -package=mocks -mock_names=Client=MockChainIndexerClient
type Client interface {
	// ListTokens fetches one page of a wallet's tokens by offset. hasMore is
	// true when the page was full and another page may follow.
	ListTokens(ctx context.Context, walletAddress string, mode domain.IndexMode, pageSize int, offset int) ([]Token, bool, error)

	// GetToken fetches one token. Missing tokens yield (nil, nil).
	GetToken(ctx context.Context, contractAddress, tokenID string) (*Token, error)

	// GetHolder fetches a wallet profile. Missing holders yield (nil, nil).
	GetHolder(ctx context.Context, address string) (*Holder, error)
}

// ChainIndexerClient implements the GraphQL chain indexer client
type ChainIndexerClient struct {
	httpClient adapter.HTTPClient
	limiter    ratelimit.Limiter
	apiURL     string
	json       adapter.JSON
}

// NewClient creates a new chain indexer client
func NewClient(httpClient adapter.HTTPClient, limiter ratelimit.Limiter, apiURL string, json adapter.JSON) Client {
	return &ChainIndexerClient{
		httpClient: httpClient,
		limiter:    limiter,
		apiURL:     apiURL,
		json:       json,
	}
}

// ListTokens fetches one page of a wallet's tokens by offset.
// Owned and created modes use structurally different queries: owned walks the
// wallet's current holdings with positive quantity, created walks the tokens
// the wallet minted.
func (c *ChainIndexerClient) ListTokens(ctx context.Context, walletAddress string, mode domain.IndexMode, pageSize int, offset int) ([]Token, bool, error) {
	var query string
	switch mode {
	case domain.IndexModeCreated:
		query = fmt.Sprintf(`query ListCreatedTokens {
  token(
    where: {creators: {creator_address: {_eq: "%s"}}, fa_contract: {_neq: "%s"}}
    order_by: {pk: asc}
    limit: %d
    offset: %d
  ) {%s
  }
}`, walletAddress, WrappedTezosContract, pageSize, offset, tokenFields)
	default:
		query = fmt.Sprintf(`query ListOwnedTokens {
  token(
    where: {holders: {holder_address: {_eq: "%s"}, quantity: {_gt: "0"}}, fa_contract: {_neq: "%s"}}
    order_by: {pk: asc}
    limit: %d
    offset: %d
  ) {%s
  }
}`, walletAddress, WrappedTezosContract, pageSize, offset, tokenFields)
	}

	var response struct {
		Data struct {
			Token []Token `json:"token"`
		} `json:"data"`
	}
	if err := c.query(ctx, query, operationName(mode), &response); err != nil {
		return nil, false, fmt.Errorf("failed to list tokens for %s: %w", walletAddress, err)
	}

	tokens := response.Data.Token
	return tokens, len(tokens) == pageSize, nil
}

// GetToken fetches one token
func (c *ChainIndexerClient) GetToken(ctx context.Context, contractAddress, tokenID string) (*Token, error) {
	query := fmt.Sprintf(`query GetToken {
  token(
    where: {fa_contract: {_eq: "%s"}, token_id: {_eq: "%s"}}
  ) {%s
  }
}`, contractAddress, tokenID, tokenFields)

	var response struct {
		Data struct {
			Token []Token `json:"token"`
		} `json:"data"`
	}
	if err := c.query(ctx, query, "GetToken", &response); err != nil {
		return nil, fmt.Errorf("failed to fetch token %s/%s: %w", contractAddress, tokenID, err)
	}

	if len(response.Data.Token) == 0 {
		return nil, nil
	}
	return &response.Data.Token[0], nil
}

// GetHolder fetches a wallet profile
func (c *ChainIndexerClient) GetHolder(ctx context.Context, address string) (*Holder, error) {
	query := fmt.Sprintf(`query GetHolder {
  holder(where: {address: {_eq: "%s"}}) {
    address
    alias
    description
    logo
    website
    twitter
  }
}`, address)

	var response struct {
		Data struct {
			Holder []Holder `json:"holder"`
		} `json:"data"`
	}
	if err := c.query(ctx, query, "GetHolder", &response); err != nil {
		return nil, fmt.Errorf("failed to fetch holder %s: %w", address, err)
	}

	if len(response.Data.Holder) == 0 {
		return nil, nil
	}
	return &response.Data.Holder[0], nil
}

// query runs one GraphQL request through the rate limiter and decodes the
// response into out
func (c *ChainIndexerClient) query(ctx context.Context, query string, operation string, out interface{}) error {
	request := GraphQLRequest{
		Query:         query,
		Variables:     nil,
		OperationName: operation,
	}

	requestBody, err := c.json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	responseBody, err := ratelimit.Execute(ctx, c.limiter, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.Post(ctx, c.apiURL, "application/json", bytes.NewReader(requestBody))
	})
	if err != nil {
		return err
	}

	// GraphQL transports errors inside a 200 body
	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := c.json.Unmarshal(responseBody, &envelope); err != nil {
		return fmt.Errorf("%w: GraphQL response: %v", domain.ErrMalformedRecord, err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("GraphQL errors: %s", envelope.Errors[0].Message)
	}

	if err := c.json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("%w: GraphQL response: %v", domain.ErrMalformedRecord, err)
	}
	return nil
}

func operationName(mode domain.IndexMode) string {
	if mode == domain.IndexModeCreated {
		return "ListCreatedTokens"
	}
	return "ListOwnedTokens"
}
