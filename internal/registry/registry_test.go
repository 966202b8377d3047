package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/registry"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestIsGenerativeCollection_Keywords(t *testing.T) {
	r := registry.NewPlatformRegistry()

	tests := []struct {
		name       string
		collection string
		contract   string
		expected   bool
	}{
		{
			name:       "fxhash collection name",
			collection: "fx(hash) Generative Works",
			contract:   "KT1XmD6SKw6CFoxmGseB3ttws5n8sTXYkKkq",
			expected:   true,
		},
		{
			name:       "art blocks name",
			collection: "Art Blocks Curated",
			contract:   "0x1111111111111111111111111111111111111111",
			expected:   true,
		},
		{
			name:       "algorithmic keyword mid-name",
			collection: "Studies in Algorithmic Color",
			contract:   "0x1111111111111111111111111111111111111111",
			expected:   true,
		},
		{
			name:       "plain pfp collection",
			collection: "Bored Ape Yacht Club",
			contract:   "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
			expected:   false,
		},
		{
			name:       "empty name and unknown contract",
			collection: "",
			contract:   "0x1111111111111111111111111111111111111111",
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.IsGenerativeCollection(tt.collection, tt.contract))
		})
	}
}

func TestIsGenerativeCollection_ContractAllowList(t *testing.T) {
	r := registry.NewPlatformRegistry()

	// Art Blocks contract with a name carrying no keyword
	assert.True(t, r.IsGenerativeCollection("Chromie Squiggle", "0x059EdD72Cd353dF5106D2B9cC5ab83a52287aC3a"))
}

func TestIsSharedContract(t *testing.T) {
	r := registry.NewPlatformRegistry()

	// Case-insensitive for EVM addresses
	assert.True(t, r.IsSharedContract("0x495f947276749Ce646f68AC8c248420045cb7b5e"))
	assert.True(t, r.IsSharedContract("KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton"))
	assert.False(t, r.IsSharedContract("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"))
}

func TestIsPlaceholderThumbnail(t *testing.T) {
	r := registry.NewPlatformRegistry()

	assert.True(t, r.IsPlaceholderThumbnail("ipfs://QmNrhZHUaEqxhyLfqoq1mtHSipkWHeT31LNHb1QEbDHgnc"))
	assert.False(t, r.IsPlaceholderThumbnail("ipfs://QmRealTokenThumbnailHash"))
	assert.False(t, r.IsPlaceholderThumbnail(""))
}

func TestLoadPlatformRegistry_Overlay(t *testing.T) {
	overlay := `{
		"generative_keywords": ["autoglyph"],
		"generative_contracts": ["0xd4e4078ca3495de5b1d4db434bebc5a986197782"],
		"shared_contracts": ["KT1Aq4wWi2VMYE5N4gAAAAAAAAAAAAAAAAAA"],
		"placeholder_thumbnails": ["ipfs://QmCustomPlaceholder"]
	}`

	path := filepath.Join(t.TempDir(), "registry.json")
	assert.NoError(t, os.WriteFile(path, []byte(overlay), 0600))

	r, err := registry.LoadPlatformRegistry(path, &adapter.RealJSON{})
	assert.NoError(t, err)

	// Overlay entries are live
	assert.True(t, r.IsGenerativeCollection("Autoglyph #134", "0x1111111111111111111111111111111111111111"))
	assert.True(t, r.IsGenerativeCollection("Whatever", "0xd4e4078ca3495de5b1d4db434bebc5a986197782"))
	assert.True(t, r.IsSharedContract("KT1Aq4wWi2VMYE5N4gAAAAAAAAAAAAAAAAAA"))
	assert.True(t, r.IsPlaceholderThumbnail("ipfs://QmCustomPlaceholder"))

	// Built-in defaults survive the merge
	assert.True(t, r.IsSharedContract("0x495f947276749ce646f68ac8c248420045cb7b5e"))
}

func TestLoadPlatformRegistry_MissingFile(t *testing.T) {
	_, err := registry.LoadPlatformRegistry("/nonexistent/registry.json", &adapter.RealJSON{})
	assert.Error(t, err)
}
