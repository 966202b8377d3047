package marketplace_test

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/mocks"
	"github.com/artfolio/artwork-indexer/internal/providers/marketplace"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestMarketplaceClient_ListNFTs_Owned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	ctx := context.Background()
	walletAddress := "0xc352B534e8b987e036A93539Fd6897F53488e56a"

	responseJSON := []byte(`{"nfts": [{"identifier": "1"}], "next": "cursor-2"}`)

	expectedURL := "https://api.marketplace.test/v2/chain/ethereum/account/0xc352b534e8b987e036a93539fd6897f53488e56a/nfts?limit=50"
	expectedHeaders := map[string]string{
		"X-API-KEY": "test-api-key",
	}

	mockHTTPClient.EXPECT().
		GetBytes(ctx, expectedURL, expectedHeaders).
		Return(responseJSON, nil)

	name := "Artwork #1"
	mockJSON.EXPECT().
		Unmarshal(responseJSON, gomock.Any()).
		DoAndReturn(func(data []byte, v interface{}) error {
			resp := v.(*marketplace.ListResponse)
			resp.NFTs = []marketplace.NFT{
				{
					Identifier: "1",
					Collection: "test-collection",
					Contract:   "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
					Name:       &name,
				},
			}
			resp.Next = "cursor-2"
			return nil
		})

	nfts, next, err := client.ListNFTs(ctx, walletAddress, domain.IndexModeOwned, 50, "")

	assert.NoError(t, err)
	assert.Len(t, nfts, 1)
	assert.Equal(t, "1", nfts[0].Identifier)
	assert.Equal(t, "cursor-2", next)
}

func TestMarketplaceClient_ListNFTs_CreatedEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	ctx := context.Background()

	expectedURL := "https://api.marketplace.test/v2/accounts/0xc352b534e8b987e036a93539fd6897f53488e56a/nfts/created?limit=25&next=abc"

	responseJSON := []byte(`{"nfts": [], "next": ""}`)
	mockHTTPClient.EXPECT().
		GetBytes(ctx, expectedURL, gomock.Any()).
		Return(responseJSON, nil)
	mockJSON.EXPECT().
		Unmarshal(responseJSON, gomock.Any()).
		Return(nil)

	nfts, next, err := client.ListNFTs(ctx, "0xc352B534e8b987e036A93539Fd6897F53488e56a", domain.IndexModeCreated, 25, "abc")

	assert.NoError(t, err)
	assert.Empty(t, nfts)
	assert.Empty(t, next)
}

func TestMarketplaceClient_ListNFTs_NoAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := marketplace.NewClient(mocks.NewMockHTTPClient(ctrl), nil, "https://api.marketplace.test/v2", "", mocks.NewMockJSON(ctrl))

	_, _, err := client.ListNFTs(context.Background(), "0xabc", domain.IndexModeOwned, 50, "")

	assert.ErrorIs(t, err, marketplace.ErrNoAPIKey)
}

func TestMarketplaceClient_GetNFT(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	ctx := context.Background()

	responseJSON := []byte(`{"nft": {"identifier": "42"}}`)
	expectedURL := "https://api.marketplace.test/v2/chain/ethereum/contract/0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d/nfts/42"

	mockHTTPClient.EXPECT().
		GetBytes(ctx, expectedURL, gomock.Any()).
		Return(responseJSON, nil)

	mockJSON.EXPECT().
		Unmarshal(responseJSON, gomock.Any()).
		DoAndReturn(func(data []byte, v interface{}) error {
			resp := v.(*marketplace.NFTResponse)
			resp.NFT = marketplace.NFT{
				Identifier: "42",
				Contract:   "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
			}
			return nil
		})

	result, err := client.GetNFT(ctx, "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D", "42")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "42", result.Identifier)
}

func TestMarketplaceClient_GetNFT_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	ctx := context.Background()

	mockHTTPClient.EXPECT().
		GetBytes(ctx, gomock.Any(), gomock.Any()).
		Return(nil, &adapter.HTTPError{StatusCode: http.StatusNotFound, URL: "https://api.marketplace.test/v2"})

	result, err := client.GetNFT(ctx, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", "999999")

	// Missing tokens are a null result, not an error
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestMarketplaceClient_GetNFT_MalformedResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	ctx := context.Background()
	responseJSON := []byte(`not json`)

	mockHTTPClient.EXPECT().
		GetBytes(ctx, gomock.Any(), gomock.Any()).
		Return(responseJSON, nil)
	mockJSON.EXPECT().
		Unmarshal(responseJSON, gomock.Any()).
		Return(assert.AnError)

	result, err := client.GetNFT(ctx, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", "1")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}

func TestMarketplaceClient_GetCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	ctx := context.Background()
	responseJSON := []byte(`{"collection": "art-blocks"}`)

	mockHTTPClient.EXPECT().
		GetBytes(ctx, "https://api.marketplace.test/v2/collections/art-blocks", gomock.Any()).
		Return(responseJSON, nil)
	mockJSON.EXPECT().
		Unmarshal(responseJSON, gomock.Any()).
		DoAndReturn(func(data []byte, v interface{}) error {
			collection := v.(*marketplace.Collection)
			collection.Slug = "art-blocks"
			collection.Name = "Art Blocks"
			return nil
		})

	result, err := client.GetCollection(ctx, "art-blocks")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "art-blocks", result.Slug)
	assert.Equal(t, "Art Blocks", result.Name)
}

func TestMarketplaceClient_GetCollection_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &adapter.HTTPError{StatusCode: http.StatusNotFound, URL: "https://api.marketplace.test/v2"})

	result, err := client.GetCollection(context.Background(), "no-such-collection")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestMarketplaceClient_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	client := marketplace.NewClient(mockHTTPClient, nil, "https://api.marketplace.test/v2", "test-api-key", mockJSON)

	ctx := context.Background()
	responseJSON := []byte(`{"address": "0xc352b534e8b987e036a93539fd6897f53488e56a", "username": "artist"}`)

	mockHTTPClient.EXPECT().
		GetBytes(ctx, "https://api.marketplace.test/v2/accounts/0xc352b534e8b987e036a93539fd6897f53488e56a", gomock.Any()).
		Return(responseJSON, nil)
	mockJSON.EXPECT().
		Unmarshal(responseJSON, gomock.Any()).
		DoAndReturn(func(data []byte, v interface{}) error {
			account := v.(*marketplace.Account)
			account.Address = "0xc352b534e8b987e036a93539fd6897f53488e56a"
			account.Username = "artist"
			return nil
		})

	result, err := client.GetAccount(ctx, "0xc352B534e8b987e036A93539Fd6897F53488e56a")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "artist", result.Username)
}

// TestMarketplaceClient_Integration calls the real marketplace API.
// It only runs if MARKETPLACE_API_KEY is set.
func TestMarketplaceClient_Integration(t *testing.T) {
	apiKey := os.Getenv("MARKETPLACE_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: MARKETPLACE_API_KEY not set")
	}

	httpClient := adapter.NewHTTPClient(30 * time.Second)
	jsonAdapter := adapter.NewJSON()

	client := marketplace.NewClient(httpClient, nil, "https://api.opensea.io/api/v2", apiKey, jsonAdapter)

	ctx := context.Background()
	result, err := client.GetNFT(ctx, "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D", "1")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "1", result.Identifier)
}
