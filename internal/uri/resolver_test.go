package uri_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/mocks"
	"github.com/artfolio/artwork-indexer/internal/uri"
)

func testResolverConfig() uri.Config {
	return uri.Config{
		IPFSGateways:   []string{"https://ipfs.io", "https://cloudflare-ipfs.com", "https://dweb.link"},
		ArweaveGateway: "https://arweave.net",
		GatewayTimeout: time.Second,
		ArchiveTimeout: 2 * time.Second,
	}
}

func TestResolver_Fetch_DataURI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No HTTP expectations: data URIs never touch the network
	resolver := uri.NewResolver(mocks.NewMockHTTPClient(ctrl), testResolverConfig())

	resource, err := resolver.Fetch(context.Background(), "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=")

	assert.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(resource.Data))
	assert.Equal(t, "image/svg+xml", resource.MimeHint)
	assert.Empty(t, resource.ResolvedURL)
}

func TestResolver_Fetch_IPFS_FirstGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), "https://ipfs.io/ipfs/QmTest", nil).
		Return([]byte("image-bytes"), nil)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Fetch(context.Background(), "ipfs://QmTest")

	assert.NoError(t, err)
	assert.Equal(t, "image-bytes", string(resource.Data))
	assert.Equal(t, "https://ipfs.io/ipfs/QmTest", resource.ResolvedURL)
}

func TestResolver_Fetch_IPFS_FallbackOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	// Gateways are tried sequentially in configured order
	gomock.InOrder(
		mockHTTPClient.EXPECT().
			GetBytes(gomock.Any(), "https://ipfs.io/ipfs/QmTest", nil).
			Return(nil, assert.AnError),
		mockHTTPClient.EXPECT().
			GetBytes(gomock.Any(), "https://cloudflare-ipfs.com/ipfs/QmTest", nil).
			Return([]byte("from-second"), nil),
	)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Fetch(context.Background(), "ipfs://QmTest")

	assert.NoError(t, err)
	assert.Equal(t, "from-second", string(resource.Data))
	assert.Equal(t, "https://cloudflare-ipfs.com/ipfs/QmTest", resource.ResolvedURL)
}

func TestResolver_Fetch_IPFS_AllGatewaysFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), nil).
		Return(nil, assert.AnError).
		Times(3)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Fetch(context.Background(), "ipfs://QmTest")

	assert.Nil(t, resource)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestResolver_Fetch_GatewayURLReresolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	// A provider-pinned gateway URL goes back through the configured list
	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), "https://ipfs.io/ipfs/QmPinned", nil).
		Return([]byte("ok"), nil)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Fetch(context.Background(), "https://gateway.pinata.cloud/ipfs/QmPinned")

	assert.NoError(t, err)
	assert.Equal(t, "https://ipfs.io/ipfs/QmPinned", resource.ResolvedURL)
}

func TestResolver_Fetch_Arweave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), "https://arweave.net/tx123", nil).
		Return([]byte("archival-bytes"), nil)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Fetch(context.Background(), "ar://tx123")

	assert.NoError(t, err)
	assert.Equal(t, "archival-bytes", string(resource.Data))
	assert.Equal(t, "https://arweave.net/tx123", resource.ResolvedURL)
}

func TestResolver_Fetch_DirectHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), "https://cdn.test/image.png", nil).
		Return([]byte("direct"), nil)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Fetch(context.Background(), "https://cdn.test/image.png")

	assert.NoError(t, err)
	assert.Equal(t, "direct", string(resource.Data))
	assert.Equal(t, "https://cdn.test/image.png", resource.ResolvedURL)
}

func TestResolver_Fetch_UnsupportedScheme(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := uri.NewResolver(mocks.NewMockHTTPClient(ctrl), testResolverConfig())

	_, err := resolver.Fetch(context.Background(), "ftp://example.com/file")

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestResolver_Peek_IPFS_HeadSelectsGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)

	// The first gateway does not serve the CID, the second does; only the
	// serving gateway gets the bounded read
	gomock.InOrder(
		mockHTTPClient.EXPECT().
			Head(gomock.Any(), "https://ipfs.io/ipfs/QmTest").
			Return(&http.Response{StatusCode: http.StatusBadGateway, Body: http.NoBody}, nil),
		mockHTTPClient.EXPECT().
			Head(gomock.Any(), "https://cloudflare-ipfs.com/ipfs/QmTest").
			Return(&http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil),
		mockHTTPClient.EXPECT().
			GetPartialContent(gomock.Any(), "https://cloudflare-ipfs.com/ipfs/QmTest", int64(3072)).
			Return([]byte("prefix-bytes"), nil),
	)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Peek(context.Background(), "ipfs://QmTest")

	assert.NoError(t, err)
	assert.Equal(t, "prefix-bytes", string(resource.Data))
	assert.Equal(t, "https://cloudflare-ipfs.com/ipfs/QmTest", resource.ResolvedURL)
}

func TestResolver_Peek_IPFS_AllProbesFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockHTTPClient.EXPECT().
		Head(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError).
		Times(3)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Peek(context.Background(), "ipfs://QmTest")

	assert.Nil(t, resource)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestResolver_Peek_DirectHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	// Already-resolved URLs skip the gateway probe
	mockHTTPClient.EXPECT().
		GetPartialContent(gomock.Any(), "https://cdn.test/video.mp4", int64(3072)).
		Return([]byte("ftyp-prefix"), nil)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Peek(context.Background(), "https://cdn.test/video.mp4")

	assert.NoError(t, err)
	assert.Equal(t, "ftyp-prefix", string(resource.Data))
	assert.Equal(t, "https://cdn.test/video.mp4", resource.ResolvedURL)
}

func TestResolver_Peek_Arweave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockHTTPClient.EXPECT().
		GetPartialContent(gomock.Any(), "https://arweave.net/tx123", int64(3072)).
		Return([]byte("archival-prefix"), nil)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	resource, err := resolver.Peek(context.Background(), "ar://tx123")

	assert.NoError(t, err)
	assert.Equal(t, "https://arweave.net/tx123", resource.ResolvedURL)
}

func TestResolver_Peek_DataURI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No HTTP expectations: data URIs never touch the network
	resolver := uri.NewResolver(mocks.NewMockHTTPClient(ctrl), testResolverConfig())

	resource, err := resolver.Peek(context.Background(), "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=")

	assert.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(resource.Data))
	assert.Equal(t, "image/svg+xml", resource.MimeHint)
	assert.Empty(t, resource.ResolvedURL)
}

func TestResolver_Fetch_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), nil).
		Return(nil, assert.AnError).
		MaxTimes(1)

	resolver := uri.NewResolver(mockHTTPClient, testResolverConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Fetch(ctx, "ipfs://QmTest")

	assert.Error(t, err)
}
