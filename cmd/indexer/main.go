package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/artfolio/artwork-indexer/internal/adapter"
	"github.com/artfolio/artwork-indexer/internal/config"
	"github.com/artfolio/artwork-indexer/internal/domain"
	"github.com/artfolio/artwork-indexer/internal/indexing"
	"github.com/artfolio/artwork-indexer/internal/logger"
	"github.com/artfolio/artwork-indexer/internal/media"
	"github.com/artfolio/artwork-indexer/internal/media/storage"
	"github.com/artfolio/artwork-indexer/internal/providers/chainindexer"
	"github.com/artfolio/artwork-indexer/internal/providers/marketplace"
	"github.com/artfolio/artwork-indexer/internal/ratelimit"
	"github.com/artfolio/artwork-indexer/internal/registry"
	"github.com/artfolio/artwork-indexer/internal/store"
	"github.com/artfolio/artwork-indexer/internal/transformer"
	"github.com/artfolio/artwork-indexer/internal/uri"
)

var (
	configPath      = flag.String("config", "config.yaml", "Path to configuration file")
	envPath         = flag.String("env", "", "Path to .env file overriding configuration")
	indexMode       = flag.String("mode", string(domain.IndexModeOwned), "Index mode: owned or created")
	contractAddress = flag.String("contract", "", "Contract address for single-item lookup")
	tokenID         = flag.String("token", "", "Token ID for single-item lookup")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadIndexerConfig(*configPath, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context cancelled on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("Received interrupt, cancelling indexing")
		cancel()
	}()

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags:      map[string]string{"service": "indexer"},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting artwork indexer")

	// Shared adapters
	jsonCodec := adapter.NewJSON()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(30 * time.Second)

	// Provider clients with adaptive pacing
	marketplaceLimiter, err := ratelimit.NewLimiter("marketplace", cfg.Marketplace.RateLimit, clock)
	if err != nil {
		logger.Fatal("Failed to create marketplace limiter", zap.Error(err))
	}
	chainIndexerLimiter, err := ratelimit.NewLimiter("chain_indexer", cfg.ChainIndexer.RateLimit, clock)
	if err != nil {
		logger.Fatal("Failed to create chain indexer limiter", zap.Error(err))
	}
	marketplaceClient := marketplace.NewClient(httpClient, marketplaceLimiter, cfg.Marketplace.APIURL, cfg.Marketplace.APIKey, jsonCodec)
	chainIndexerClient := chainindexer.NewClient(httpClient, chainIndexerLimiter, cfg.ChainIndexer.APIURL, jsonCodec)

	// Platform registry
	platformRegistry := registry.NewPlatformRegistry()
	if cfg.RegistryPath != "" {
		platformRegistry, err = registry.LoadPlatformRegistry(cfg.RegistryPath, jsonCodec)
		if err != nil {
			logger.Fatal("Failed to load platform registry", zap.Error(err), zap.String("path", cfg.RegistryPath))
		}
		logger.Info("Loaded platform registry overlay", zap.String("path", cfg.RegistryPath))
	}

	recordTransformer := transformer.NewTransformer(marketplaceClient, chainIndexerClient, platformRegistry)

	// Media pipeline
	resolver := uri.NewResolver(httpClient, uri.Config{
		IPFSGateways:   cfg.URI.IPFSGateways,
		ArweaveGateway: cfg.URI.ArweaveGateway,
		GatewayTimeout: cfg.URI.GatewayTimeout,
		ArchiveTimeout: cfg.URI.ArchiveTimeout,
	})
	imageCodec := adapter.NewImageCodec()
	cfClient, err := adapter.NewCloudflareClient(cfg.Cloudflare.APIToken)
	if err != nil {
		logger.Fatal("Failed to create Cloudflare client", zap.Error(err))
	}
	storageProvider := storage.NewCloudflareProvider(cfClient, cfg.Cloudflare)
	mediaPipeline := media.NewPipeline(
		resolver,
		media.NewReencoder(imageCodec, cfg.Media),
		imageCodec,
		adapter.NewFFprobeClient(),
		storageProvider,
		cfg.Media,
	)
	defer mediaPipeline.Close()

	datastore := store.NewMemoryStore()
	orchestrator := indexing.NewOrchestrator(marketplaceClient, chainIndexerClient, recordTransformer, mediaPipeline, datastore, cfg.Indexing)

	if *contractAddress != "" || *tokenID != "" {
		runSingleItem(ctx, orchestrator, *contractAddress, *tokenID)
		return
	}
	runWallets(ctx, orchestrator, cfg.Indexing.MaxConcurrentJobs, flag.Args())
}

// runWallets indexes every wallet given on the command line, fanning out
// across independent jobs
func runWallets(ctx context.Context, orchestrator indexing.Orchestrator, maxConcurrentJobs int, wallets []string) {
	if len(wallets) == 0 {
		logger.Fatal("No wallet addresses given")
	}

	mode, err := parseIndexMode(*indexMode)
	if err != nil {
		logger.Fatal("Invalid index mode", zap.Error(err))
	}

	jobs := make([]indexing.WalletJob, 0, len(wallets))
	for _, wallet := range wallets {
		jobs = append(jobs, indexing.WalletJob{
			Address:    wallet,
			Blockchain: domain.AddressToBlockchain(wallet),
			Mode:       mode,
		})
	}

	runner := indexing.NewRunner(orchestrator, maxConcurrentJobs)
	defer runner.Close()

	results := runner.Run(ctx, jobs)

	var indexed, failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}
		indexed += len(result.Artworks)
	}
	logger.Info("Indexing finished",
		zap.Int("wallets", len(wallets)),
		zap.Int("artworks", indexed),
		zap.Int("failed_jobs", failed))
}

// runSingleItem fetches and persists one token addressed by contract and ID
func runSingleItem(ctx context.Context, orchestrator indexing.Orchestrator, contract string, token string) {
	if contract == "" || token == "" {
		logger.Fatal("Single-item lookup needs both -contract and -token")
	}

	artwork, err := orchestrator.GetSingleItem(ctx, contract, token, domain.AddressToBlockchain(contract))
	if err != nil {
		logger.Fatal("Single-item lookup failed", zap.Error(err),
			zap.String("contract", contract),
			zap.String("token", token))
	}
	if artwork == nil {
		logger.Warn("Token not found",
			zap.String("contract", contract),
			zap.String("token", token))
		return
	}
	logger.Info("Indexed token",
		zap.String("key", artwork.Key()),
		zap.String("title", artwork.Title))
}

func parseIndexMode(mode string) (domain.IndexMode, error) {
	switch domain.IndexMode(mode) {
	case domain.IndexModeOwned:
		return domain.IndexModeOwned, nil
	case domain.IndexModeCreated:
		return domain.IndexModeCreated, nil
	default:
		return "", fmt.Errorf("unknown index mode %q", mode)
	}
}
