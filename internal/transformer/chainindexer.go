package transformer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/providers/chainindexer"
)

// FromChainIndexer maps a chain indexer token to a canonical artwork
func (t *transformer) FromChainIndexer(ctx context.Context, token *chainindexer.Token) (*domain.Artwork, error) {
	var missing []string
	if token.FaContract == "" {
		missing = append(missing, "fa_contract")
	}
	if token.TokenID == "" {
		missing = append(missing, "token_id")
	}
	if len(missing) > 0 {
		return nil, &domain.MissingRequiredFieldsError{Source: chainindexer.PROVIDER_NAME, Fields: missing}
	}

	mime := deref(token.Mime)

	artwork := &domain.Artwork{
		ContractAddress: token.FaContract,
		TokenID:         token.TokenID,
		Blockchain:      domain.BlockchainTezos,
		Title:           deref(token.Name),
		Description:     deref(token.Description),
		MetadataURL:     deref(token.Metadata),
		TokenStandard:   domain.StandardFA2,
		Mime:            mime,
		Symbol:          deref(token.Symbol),
		Supply:          token.Supply,
	}
	if artwork.Supply == 0 {
		artwork.Supply = 1
	}

	// The artifact is the original media. Where it is a still image it is the
	// best imageUrl; otherwise it is the playable surface and the display
	// variant serves as the image.
	artifact := deref(token.ArtifactURI)
	display := deref(token.DisplayURI)
	thumbnail := deref(token.ThumbnailURI)

	switch {
	case mime != "" && strings.HasPrefix(mime, "image/"):
		artwork.ImageURL = firstNonEmpty(artifact, display, thumbnail)
	case mime != "" && (strings.HasPrefix(mime, "video/") || strings.HasPrefix(mime, "audio/")):
		artwork.AnimationURL = artifact
		artwork.ImageURL = firstNonEmpty(display, thumbnail)
	case isInteractiveMime(mime):
		artwork.AnimationURL = artifact
		artwork.ImageURL = firstNonEmpty(display, thumbnail)
	default:
		// Unknown mime: keep the display image and let the media pipeline
		// sniff the artifact
		artwork.AnimationURL = artifact
		artwork.ImageURL = firstNonEmpty(display, thumbnail)
	}
	artwork.ThumbnailURL = t.pickThumbnail(thumbnail, artwork.ImageURL)

	artwork.Dimensions = chainDimensions(token.Dimensions)

	artwork.Attributes = MergeAttributes(AttributeSources{
		Attributes: chainAttributes(token.Attributes),
	})

	artwork.Collection = t.resolveChainCollection(token)

	if artwork.Collection.IsGenerativeArt && (mime == "" || isInteractiveMime(mime)) {
		artwork.GeneratorURL = artifact
	}

	artwork.Creator = t.resolveChainCreator(ctx, token)

	artwork.MintDate = resolveMintDate(ctx, []mintDateStrategy{
		{name: "token_timestamp", value: token.Timestamp},
	})

	return artwork, nil
}

// resolveChainCollection builds the collection from the token's embedded
// contract metadata
func (t *transformer) resolveChainCollection(token *chainindexer.Token) domain.Collection {
	collection := domain.Collection{
		Slug:            token.FaContract,
		ContractAddress: token.FaContract,
	}

	if fa := token.Fa; fa != nil {
		collection.Title = deref(fa.Name)
		collection.Description = deref(fa.Description)
		collection.ImageURL = deref(fa.Logo)
		collection.WebsiteURL = deref(fa.Website)

		if fa.FloorPrice != nil || fa.Items != nil {
			collection.Stats = &domain.CollectionStats{TotalSupply: fa.Items}
			if fa.FloorPrice != nil {
				// Floor price arrives in mutez
				tez := float64(*fa.FloorPrice) / 1_000_000
				collection.Stats.FloorPrice = &tez
			}
		}
	}

	collection.IsGenerativeArt = t.registry.IsGenerativeCollection(collection.Title, token.FaContract)
	collection.IsSharedContract = t.registry.IsSharedContract(token.FaContract)

	return collection
}

// resolveChainCreator prefers the embedded holder profile and falls back to a
// best-effort holder lookup for address-only creators
func (t *transformer) resolveChainCreator(ctx context.Context, token *chainindexer.Token) *domain.Creator {
	if len(token.Creators) == 0 {
		return nil
	}

	first := token.Creators[0]
	address := first.CreatorAddress
	if address == "" && first.Holder != nil {
		address = first.Holder.Address
	}
	if address == "" {
		return nil
	}

	creator := &domain.Creator{
		Address:          address,
		ResolutionSource: "chain_indexer_record",
	}

	holder := first.Holder
	if holder == nil && t.chainIndexerClient != nil {
		fetched, err := t.chainIndexerClient.GetHolder(ctx, address)
		if err != nil {
			logger.WarnCtx(ctx, "Creator enrichment failed, keeping address only",
				zap.String("address", address),
				zap.Error(err),
			)
			return creator
		}
		holder = fetched
	}

	if holder != nil {
		creator.Username = deref(holder.Alias)
		creator.Bio = deref(holder.Description)
		creator.AvatarURL = deref(holder.Logo)
		creator.WebsiteURL = deref(holder.Website)
		creator.ResolutionSource = "chain_indexer_holder"
		if twitter := deref(holder.Twitter); twitter != "" {
			creator.SocialLinks = map[string]string{"twitter": twitter}
		}
	}

	return creator
}

// chainDimensions digs the artifact dimensions out of the indexer's nested
// dimensions object, falling back to the display variant
func chainDimensions(raw map[string]interface{}) *domain.Dimensions {
	for _, variant := range []string{"artifact", "display"} {
		entry, ok := raw[variant].(map[string]interface{})
		if !ok {
			continue
		}
		dims, ok := entry["dimensions"].(map[string]interface{})
		if !ok {
			continue
		}
		width, wok := dims["width"].(float64)
		height, hok := dims["height"].(float64)
		if wok && hok && width > 0 && height > 0 {
			return &domain.Dimensions{Width: int(width), Height: int(height)}
		}
	}
	return nil
}

func chainAttributes(attrs []chainindexer.TokenAttribute) []domain.Attribute {
	out := make([]domain.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, domain.Attribute{
			TraitType: a.Attribute.Name,
			Value:     a.Attribute.Value,
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
