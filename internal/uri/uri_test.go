package uri_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/uri"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected uri.Kind
	}{
		{name: "data URI", uri: "data:image/svg+xml;base64,PHN2Zz4=", expected: uri.KindData},
		{name: "arweave", uri: "ar://abc123def456", expected: uri.KindArweave},
		{name: "ipfs scheme", uri: "ipfs://QmXxYyZz", expected: uri.KindIPFS},
		{name: "ipfs gateway url", uri: "https://gateway.pinata.cloud/ipfs/QmXxYyZz", expected: uri.KindIPFS},
		{name: "plain https", uri: "https://cdn.test/image.png", expected: uri.KindHTTP},
		{name: "plain http", uri: "http://cdn.test/image.png", expected: uri.KindHTTP},
		{name: "unknown scheme", uri: "ftp://example.com/file", expected: uri.KindUnknown},
		{name: "empty", uri: "", expected: uri.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, uri.Classify(tt.uri))
		})
	}
}

func TestExtractCID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
		ok       bool
	}{
		{name: "ipfs scheme", uri: "ipfs://QmXxYyZz", expected: "QmXxYyZz", ok: true},
		{name: "ipfs scheme with path", uri: "ipfs://QmXxYyZz/metadata.json", expected: "QmXxYyZz/metadata.json", ok: true},
		{name: "gateway url", uri: "https://ipfs.io/ipfs/QmXxYyZz", expected: "QmXxYyZz", ok: true},
		{name: "no cid", uri: "https://cdn.test/image.png", expected: "", ok: false},
		{name: "empty ipfs", uri: "ipfs://", expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cid, ok := uri.ExtractCID(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, cid)
		})
	}
}

func TestDecodeDataURI_Base64(t *testing.T) {
	data, mediaType, err := uri.DecodeDataURI("data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=")

	assert.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mediaType)
	assert.Equal(t, "<svg></svg>", string(data))
}

func TestDecodeDataURI_Plain(t *testing.T) {
	data, mediaType, err := uri.DecodeDataURI("data:text/html,%3Chtml%3E%3C%2Fhtml%3E")

	assert.NoError(t, err)
	assert.Equal(t, "text/html", mediaType)
	assert.Equal(t, "<html></html>", string(data))
}

func TestDecodeDataURI_DefaultMediaType(t *testing.T) {
	data, mediaType, err := uri.DecodeDataURI("data:,hello")

	assert.NoError(t, err)
	assert.Equal(t, "text/plain", mediaType)
	assert.Equal(t, "hello", string(data))
}

func TestDecodeDataURI_Malformed(t *testing.T) {
	_, _, err := uri.DecodeDataURI("data:image/png;base64")
	assert.Error(t, err)

	_, _, err = uri.DecodeDataURI("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)
}
