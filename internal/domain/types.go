package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Blockchain represents the blockchain name
type Blockchain string

const (
	BlockchainEthereum Blockchain = "ethereum"
	BlockchainTezos    Blockchain = "tezos"
	BlockchainPolygon  Blockchain = "polygon"
)

// IsValidBlockchain checks if a blockchain is supported
func IsValidBlockchain(b Blockchain) bool {
	return b == BlockchainEthereum || b == BlockchainTezos || b == BlockchainPolygon
}

// TokenStandard represents blockchain token standards
type TokenStandard string

const (
	StandardERC721  TokenStandard = "ERC721"
	StandardERC1155 TokenStandard = "ERC1155"
	StandardFA2     TokenStandard = "FA2"
)

// IndexMode selects which relationship between a wallet and its tokens to index
type IndexMode string

const (
	IndexModeOwned   IndexMode = "owned"
	IndexModeCreated IndexMode = "created"
)

// Dimensions holds pixel dimensions of a media asset.
// Width and height are always strictly positive when the struct is present.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Attribute is a single trait of an artwork
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Creator holds the minting address plus optional profile enrichment
type Creator struct {
	Address          string            `json:"address"`
	Username         string            `json:"username,omitempty"`
	DisplayName      string            `json:"display_name,omitempty"`
	Bio              string            `json:"bio,omitempty"`
	ProfileURL       string            `json:"profile_url,omitempty"`
	AvatarURL        string            `json:"avatar_url,omitempty"`
	WebsiteURL       string            `json:"website_url,omitempty"`
	Verified         bool              `json:"verified,omitempty"`
	ResolutionSource string            `json:"resolution_source,omitempty"`
	SocialLinks      map[string]string `json:"social_links,omitempty"`
}

// CollectionStats holds optional marketplace statistics for a collection
type CollectionStats struct {
	FloorPrice  *float64   `json:"floor_price,omitempty"`
	TotalSupply *int       `json:"total_supply,omitempty"`
	MintOpened  *time.Time `json:"mint_opened,omitempty"`
	MintClosed  *time.Time `json:"mint_closed,omitempty"`
}

// Collection groups artworks minted under one contract or marketplace slug.
// Slug falls back to the contract address when no collection metadata exists.
type Collection struct {
	Slug            string           `json:"slug"`
	Title           string           `json:"title,omitempty"`
	Description     string           `json:"description,omitempty"`
	ContractAddress string           `json:"contract_address"`
	WebsiteURL      string           `json:"website_url,omitempty"`
	DiscordURL      string           `json:"discord_url,omitempty"`
	TelegramURL     string           `json:"telegram_url,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	BannerURL       string           `json:"banner_url,omitempty"`
	IsGenerativeArt bool             `json:"is_generative_art"`
	IsSharedContract bool            `json:"is_shared_contract"`
	Stats           *CollectionStats `json:"stats,omitempty"`
}

// Artwork is the unified, provider-agnostic record produced by the transformer.
// The pair (ContractAddress, TokenID) is unique per blockchain.
type Artwork struct {
	ContractAddress string     `json:"contract_address"`
	TokenID         string     `json:"token_id"`
	Blockchain      Blockchain `json:"blockchain"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	ImageURL     string `json:"image_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	AnimationURL string `json:"animation_url,omitempty"`
	GeneratorURL string `json:"generator_url,omitempty"`
	MetadataURL  string `json:"metadata_url,omitempty"`

	TokenStandard TokenStandard `json:"token_standard,omitempty"`
	Mime          string        `json:"mime,omitempty"`
	Symbol        string        `json:"symbol,omitempty"`
	Supply        int           `json:"supply"`
	Dimensions    *Dimensions   `json:"dimensions,omitempty"`
	MintDate      *time.Time    `json:"mint_date,omitempty"`

	Attributes []Attribute            `json:"attributes,omitempty"`
	Features   map[string]interface{} `json:"features,omitempty"`

	Creator    *Creator   `json:"creator,omitempty"`
	Collection Collection `json:"collection"`
}

// HasMedia reports whether the artwork carries at least one media reference
func (a *Artwork) HasMedia() bool {
	return a.ImageURL != "" || a.AnimationURL != "" || a.GeneratorURL != ""
}

// Key returns the identity tuple as a single string, used for dedupe and logging
func (a *Artwork) Key() string {
	return string(a.Blockchain) + ":" + a.ContractAddress + ":" + a.TokenID
}

// MediaFetchResult is the transient product of resolving one media URI.
// It lives only for the duration of one artwork's media resolution.
type MediaFetchResult struct {
	Data        []byte
	Mime        string
	Filename    string
	ResolvedURL string
	Dimensions  *Dimensions
}

// AddressToBlockchain infers which chain an address belongs to
func AddressToBlockchain(address string) Blockchain {
	if strings.HasPrefix(address, "0x") {
		return BlockchainEthereum
	}
	return BlockchainTezos
}

// NormalizeContractAddress lower-cases EVM contract addresses after hex
// validation; Tezos KT1 addresses are case-sensitive and pass through.
func NormalizeContractAddress(address string) string {
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return address
}

// IsValidContractAddress checks an address against the chain's format
func IsValidContractAddress(blockchain Blockchain, address string) bool {
	switch blockchain {
	case BlockchainEthereum, BlockchainPolygon:
		return common.IsHexAddress(address)
	case BlockchainTezos:
		return strings.HasPrefix(address, "KT1")
	default:
		return false
	}
}
