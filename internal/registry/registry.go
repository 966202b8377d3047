package registry

import (
	"fmt"
	"strings"

	"github.com/artfolio/artwork-indexer/internal/adapter"
)

// PlatformRegistry answers curated-knowledge questions about marketplaces and
// minting platforms: which collections are generative art, which contracts are
// shared minting contracts, and which thumbnail URIs are platform placeholders
//
//go:generate mockgen -source=registry.go -destination=../mocks/platform_registry.go -package=mocks -mock_names=PlatformRegistry=MockPlatformRegistry
type PlatformRegistry interface {
	// IsGenerativeCollection checks the collection name against the keyword
	// list and the contract address against the generative platform allow-list
	IsGenerativeCollection(collectionName string, contractAddress string) bool

	// IsSharedContract checks if a contract is a multi-artist shared minting
	// contract, whose deployer must not be treated as the artwork's creator
	IsSharedContract(contractAddress string) bool

	// IsPlaceholderThumbnail checks if a URI is a known platform default
	// image that should be discarded in favor of the primary image
	IsPlaceholderThumbnail(uri string) bool
}

// PlatformData represents the structure of an optional registry overlay file.
// Entries are merged on top of the built-in defaults.
type PlatformData struct {
	GenerativeKeywords    []string `json:"generative_keywords"`
	GenerativeContracts   []string `json:"generative_contracts"`
	SharedContracts       []string `json:"shared_contracts"`
	PlaceholderThumbnails []string `json:"placeholder_thumbnails"`
}

// platformRegistry is the internal implementation of PlatformRegistry
type platformRegistry struct {
	keywords []string
	// Fast lookup maps keyed by lower-cased address / URI
	generativeContracts map[string]bool
	sharedContracts     map[string]bool
	placeholders        map[string]bool
}

// Collection names containing any of these are flagged as generative art
var defaultGenerativeKeywords = []string{
	"art blocks",
	"artblocks",
	"fxhash",
	"fx(hash)",
	"generative",
	"algorithmic",
	"gentk",
	"plottable",
}

// Contracts of dedicated generative-art platforms
var defaultGenerativeContracts = []string{
	// Art Blocks (legacy, v1, v3 engine)
	"0x059edd72cd353df5106d2b9cc5ab83a52287ac3a",
	"0xa7d8d9ef8d8ce8992df33d8b8cf4aebabd5bd270",
	"0x99a9b7c1116f9ceeb1652de04d5969cce509b069",
	// fxhash gentk v1 and v2
	"KT1KEa8z6vWXDJrVqtMrAeDVzsvxat3kHaCE",
	"KT1U6EHmNxJTkvaWJ4ThczG4FSDaHC21ssvi",
}

// Multi-artist minting contracts where the deployer is not the creator
var defaultSharedContracts = []string{
	// OpenSea shared storefront
	"0x495f947276749ce646f68ac8c248420045cb7b5e",
	// Rarible ERC-721 and ERC-1155
	"0xf6793da657495ffeff9ee6350824910abc21356c",
	"0xb66a603f4cfe17e3d27b87a8bfcad319856518b8",
	// Foundation shared
	"0x3b3ee1931dc30c1957379fac9aba94d1c48a5405",
	// hic et nunc OBJKTs
	"KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
	// fxhash gentk (every fxhash project mints through it)
	"KT1KEa8z6vWXDJrVqtMrAeDVzsvxat3kHaCE",
	"KT1U6EHmNxJTkvaWJ4ThczG4FSDaHC21ssvi",
}

// Platform default thumbnails, substituted by the primary image when seen
var defaultPlaceholderThumbnails = []string{
	// objkt.com generic circle shown before a token thumbnail is generated
	"ipfs://QmNrhZHUaEqxhyLfqoq1mtHSipkWHeT31LNHb1QEbDHgnc",
	// hic et nunc interactive placeholder
	"ipfs://QmU6vVmdy9cQo2Tkt7yRmF7e9qwNvm9rhoW6r787eUi7hB",
}

// NewPlatformRegistry returns a registry with the built-in defaults
func NewPlatformRegistry() PlatformRegistry {
	r := &platformRegistry{
		keywords:            append([]string(nil), defaultGenerativeKeywords...),
		generativeContracts: make(map[string]bool),
		sharedContracts:     make(map[string]bool),
		placeholders:        make(map[string]bool),
	}
	r.merge(PlatformData{
		GenerativeContracts:   defaultGenerativeContracts,
		SharedContracts:       defaultSharedContracts,
		PlaceholderThumbnails: defaultPlaceholderThumbnails,
	})
	return r
}

// LoadPlatformRegistry returns the built-in defaults extended with entries
// from a JSON overlay file
func LoadPlatformRegistry(filePath string, json adapter.JSON) (PlatformRegistry, error) {
	var overlay PlatformData
	if err := json.UnmarshalFromFile(filePath, &overlay); err != nil {
		return nil, fmt.Errorf("failed to load registry file: %w", err)
	}

	r := NewPlatformRegistry().(*platformRegistry)
	r.keywords = append(r.keywords, overlay.GenerativeKeywords...)
	r.merge(overlay)
	return r, nil
}

func (r *platformRegistry) merge(data PlatformData) {
	for _, addr := range data.GenerativeContracts {
		r.generativeContracts[strings.ToLower(addr)] = true
	}
	for _, addr := range data.SharedContracts {
		r.sharedContracts[strings.ToLower(addr)] = true
	}
	for _, uri := range data.PlaceholderThumbnails {
		r.placeholders[strings.ToLower(uri)] = true
	}
}

// IsGenerativeCollection checks the collection name against the keyword list
// and the contract address against the generative platform allow-list
func (r *platformRegistry) IsGenerativeCollection(collectionName string, contractAddress string) bool {
	if r == nil {
		return false
	}

	if r.generativeContracts[strings.ToLower(contractAddress)] {
		return true
	}

	name := strings.ToLower(collectionName)
	for _, keyword := range r.keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

// IsSharedContract checks if a contract is a multi-artist shared minting contract
func (r *platformRegistry) IsSharedContract(contractAddress string) bool {
	if r == nil {
		return false
	}
	return r.sharedContracts[strings.ToLower(contractAddress)]
}

// IsPlaceholderThumbnail checks if a URI is a known platform default image
func (r *platformRegistry) IsPlaceholderThumbnail(uri string) bool {
	if r == nil || uri == "" {
		return false
	}
	return r.placeholders[strings.ToLower(uri)]
}
