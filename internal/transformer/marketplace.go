package transformer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/providers/marketplace"
)

// FromMarketplace maps a marketplace NFT record to a canonical artwork
func (t *transformer) FromMarketplace(ctx context.Context, nft *marketplace.NFT) (*domain.Artwork, error) {
	var missing []string
	if nft.Contract == "" {
		missing = append(missing, "contract")
	}
	if nft.Identifier == "" {
		missing = append(missing, "identifier")
	}
	if len(missing) > 0 {
		return nil, &domain.MissingRequiredFieldsError{Source: marketplace.PROVIDER_NAME, Fields: missing}
	}

	contractAddress := domain.NormalizeContractAddress(nft.Contract)

	artwork := &domain.Artwork{
		ContractAddress: contractAddress,
		TokenID:         nft.Identifier,
		Blockchain:      domain.BlockchainEthereum,
		Title:           deref(nft.Name),
		Description:     deref(nft.Description),
		MetadataURL:     deref(nft.MetadataURL),
		TokenStandard:   marketplaceTokenStandard(nft.TokenStandard),
		Supply:          1,
	}

	// The original image outranks display-sized variants
	imageURL := deref(nft.ImageURL)
	if imageURL == "" {
		imageURL = deref(nft.DisplayImage)
	}
	artwork.ImageURL = imageURL
	artwork.ThumbnailURL = t.pickThumbnail(deref(nft.DisplayImage), imageURL)

	animationURL := deref(nft.AnimationURL)
	if animationURL == "" {
		animationURL = deref(nft.DisplayAnim)
	}
	artwork.AnimationURL = animationURL

	artwork.Attributes = MergeAttributes(AttributeSources{
		Traits: marketplaceTraits(nft.Traits),
	})

	collection, collectionOwner := t.resolveMarketplaceCollection(ctx, nft, contractAddress)
	artwork.Collection = collection

	// Interactive artifacts double as the generator entry point
	if artwork.Collection.IsGenerativeArt && artwork.GeneratorURL == "" {
		artwork.GeneratorURL = animationURL
	}

	artwork.Creator = t.resolveMarketplaceCreator(ctx, nft, collectionOwner, collection.IsSharedContract)

	artwork.MintDate = resolveMintDate(ctx, marketplaceMintDateStrategies(nft, artwork.Collection))

	return artwork, nil
}

// resolveMarketplaceCollection builds the collection record, enriching it from
// the collections endpoint on a best-effort basis. The returned owner address
// backs the creator fallback for non-shared contracts.
func (t *transformer) resolveMarketplaceCollection(ctx context.Context, nft *marketplace.NFT, contractAddress string) (domain.Collection, string) {
	collection := domain.Collection{
		Slug:            nft.Collection,
		ContractAddress: contractAddress,
	}
	if collection.Slug == "" {
		collection.Slug = contractAddress
	}

	var owner string
	if nft.Collection != "" && t.marketplaceClient != nil {
		detail, err := t.marketplaceClient.GetCollection(ctx, nft.Collection)
		if err != nil {
			logger.WarnCtx(ctx, "Collection enrichment failed, keeping slug only",
				zap.String("slug", nft.Collection),
				zap.Error(err),
			)
		} else if detail != nil {
			owner = detail.Owner
			collection.Title = detail.Name
			collection.Description = detail.Description
			collection.ImageURL = detail.ImageURL
			collection.BannerURL = detail.BannerImageURL
			collection.WebsiteURL = detail.ProjectURL
			collection.DiscordURL = detail.DiscordURL
			collection.TelegramURL = detail.TelegramURL
			if detail.TotalSupply != nil || detail.CreatedDate != nil {
				collection.Stats = &domain.CollectionStats{TotalSupply: detail.TotalSupply}
				if detail.CreatedDate != nil {
					if created, err := parseTimestamp(*detail.CreatedDate); err == nil {
						collection.Stats.MintOpened = created
					}
				}
			}
		}
	}

	collection.IsGenerativeArt = t.registry.IsGenerativeCollection(collection.Title, contractAddress)
	if !collection.IsGenerativeArt && collection.Slug != contractAddress {
		collection.IsGenerativeArt = t.registry.IsGenerativeCollection(collection.Slug, contractAddress)
	}
	collection.IsSharedContract = t.registry.IsSharedContract(contractAddress)

	return collection, owner
}

// resolveMarketplaceCreator resolves the creator, degrading to an
// address-only record when profile enrichment fails. On shared minting
// contracts the collection owner is never used as a creator fallback.
func (t *transformer) resolveMarketplaceCreator(ctx context.Context, nft *marketplace.NFT, collectionOwner string, isSharedContract bool) *domain.Creator {
	address := deref(nft.Creator)
	if address == "" && !isSharedContract {
		address = collectionOwner
	}
	if address == "" {
		return nil
	}

	creator := &domain.Creator{
		Address:          domain.NormalizeContractAddress(address),
		ResolutionSource: "marketplace_record",
	}

	if t.marketplaceClient == nil {
		return creator
	}

	account, err := t.marketplaceClient.GetAccount(ctx, address)
	if err != nil {
		logger.WarnCtx(ctx, "Creator enrichment failed, keeping address only",
			zap.String("address", address),
			zap.Error(err),
		)
		return creator
	}
	if account == nil {
		return creator
	}

	creator.Username = account.Username
	creator.Bio = account.Bio
	creator.AvatarURL = account.ProfileImageURL
	creator.WebsiteURL = account.Website
	creator.ResolutionSource = "marketplace_account"
	if len(account.SocialAccounts) > 0 {
		creator.SocialLinks = make(map[string]string, len(account.SocialAccounts))
		for _, link := range account.SocialAccounts {
			creator.SocialLinks[strings.ToLower(link.Platform)] = link.Username
		}
	}

	return creator
}

// marketplaceMintDateStrategies lists the timestamp candidates in priority
// order. The record's updated_at is deliberately absent: a last-updated
// timestamp is never a mint date.
func marketplaceMintDateStrategies(nft *marketplace.NFT, collection domain.Collection) []mintDateStrategy {
	var collectionCreated *string
	if collection.Stats != nil && collection.Stats.MintOpened != nil {
		formatted := collection.Stats.MintOpened.Format("2006-01-02T15:04:05Z07:00")
		collectionCreated = &formatted
	}

	return []mintDateStrategy{
		{name: "collection_mint_opened", value: collectionCreated},
	}
}

func marketplaceTraits(traits []marketplace.Trait) []domain.Attribute {
	attrs := make([]domain.Attribute, 0, len(traits))
	for _, trait := range traits {
		attrs = append(attrs, domain.Attribute{
			TraitType: trait.TraitType,
			Value:     StringifyAttributeValue(trait.Value),
		})
	}
	return attrs
}

func marketplaceTokenStandard(standard string) domain.TokenStandard {
	switch strings.ToLower(standard) {
	case "erc721":
		return domain.StandardERC721
	case "erc1155":
		return domain.StandardERC1155
	default:
		return ""
	}
}
