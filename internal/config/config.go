package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// RateLimitConfig holds the adaptive pacing parameters for one provider
type RateLimitConfig struct {
	BaseDelay         time.Duration `mapstructure:"base_delay"`
	MaxDelay          time.Duration `mapstructure:"max_delay"`
	BackoffMultiplier float64       `mapstructure:"backoff_multiplier"`
	MaxRetries        int           `mapstructure:"max_retries"`
	AdaptiveThreshold int           `mapstructure:"adaptive_threshold"`
	BatchSize         int           `mapstructure:"batch_size"`
}

// MarketplaceConfig holds the Ethereum marketplace API configuration
type MarketplaceConfig struct {
	APIURL    string          `mapstructure:"api_url"`
	APIKey    string          `mapstructure:"api_key"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ChainIndexerConfig holds the Tezos GraphQL indexer configuration
type ChainIndexerConfig struct {
	APIURL    string          `mapstructure:"api_url"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// URIConfig holds gateway lists for content-addressed storage resolution
type URIConfig struct {
	IPFSGateways   []string      `mapstructure:"ipfs_gateways"`
	ArweaveGateway string        `mapstructure:"arweave_gateway"`
	GatewayTimeout time.Duration `mapstructure:"gateway_timeout"`
	ArchiveTimeout time.Duration `mapstructure:"archive_timeout"`
}

// MediaConfig holds media pipeline configuration
type MediaConfig struct {
	SizeBudgetBytes  int64 `mapstructure:"size_budget_bytes"`
	InitialQuality   int   `mapstructure:"initial_quality"`
	MinQuality       int   `mapstructure:"min_quality"`
	QualityStep      int   `mapstructure:"quality_step"`
	ShrinkPercentage int   `mapstructure:"shrink_percentage"`
	MaxAttempts      int   `mapstructure:"max_attempts"`
	UploadRetries    int   `mapstructure:"upload_retries"`
	WorkerCount      int   `mapstructure:"worker_count"`
}

// CloudflareConfig holds the storage/pinning collaborator credentials
type CloudflareConfig struct {
	AccountID string `mapstructure:"account_id"`
	APIToken  string `mapstructure:"api_token"`
}

// IndexingConfig holds orchestrator bounds
type IndexingConfig struct {
	PageSize              int `mapstructure:"page_size"`
	MaxPages              int `mapstructure:"max_pages"`
	MaxConsecutiveRetries int `mapstructure:"max_consecutive_retries"`
	MaxConcurrentJobs     int `mapstructure:"max_concurrent_jobs"`
}

// IndexerConfig holds configuration for the artwork indexer
type IndexerConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Marketplace  MarketplaceConfig  `mapstructure:"marketplace"`
	ChainIndexer ChainIndexerConfig `mapstructure:"chain_indexer"`
	URI          URIConfig          `mapstructure:"uri"`
	Media        MediaConfig        `mapstructure:"media"`
	Cloudflare   CloudflareConfig   `mapstructure:"cloudflare"`
	Indexing     IndexingConfig     `mapstructure:"indexing"`
	RegistryPath string             `mapstructure:"registry_path"`
}

// LoadIndexerConfig loads configuration for the indexer
func LoadIndexerConfig(configFile string, envPath string) (*IndexerConfig, error) {
	v := configureViper("indexer", configFile, envPath)

	// Set defaults
	v.SetDefault("marketplace.api_url", "https://api.opensea.io/api/v2")
	v.SetDefault("marketplace.rate_limit.base_delay", "250ms")
	v.SetDefault("marketplace.rate_limit.max_delay", "30s")
	v.SetDefault("marketplace.rate_limit.backoff_multiplier", 2.0)
	v.SetDefault("marketplace.rate_limit.max_retries", 5)
	v.SetDefault("marketplace.rate_limit.adaptive_threshold", 10)
	v.SetDefault("marketplace.rate_limit.batch_size", 50)
	v.SetDefault("chain_indexer.api_url", "https://data.objkt.com/v3/graphql")
	v.SetDefault("chain_indexer.rate_limit.base_delay", "500ms")
	v.SetDefault("chain_indexer.rate_limit.max_delay", "60s")
	v.SetDefault("chain_indexer.rate_limit.backoff_multiplier", 2.0)
	v.SetDefault("chain_indexer.rate_limit.max_retries", 5)
	v.SetDefault("chain_indexer.rate_limit.adaptive_threshold", 10)
	v.SetDefault("chain_indexer.rate_limit.batch_size", 100)
	v.SetDefault("uri.ipfs_gateways", []string{"https://ipfs.io", "https://cloudflare-ipfs.com", "https://dweb.link"})
	v.SetDefault("uri.arweave_gateway", "https://arweave.net")
	v.SetDefault("uri.gateway_timeout", "15s")
	v.SetDefault("uri.archive_timeout", "60s")
	v.SetDefault("media.size_budget_bytes", 10*1024*1024) // 10MB
	v.SetDefault("media.initial_quality", 85)
	v.SetDefault("media.min_quality", 40)
	v.SetDefault("media.quality_step", 10)
	v.SetDefault("media.shrink_percentage", 25)
	v.SetDefault("media.max_attempts", 12)
	v.SetDefault("media.upload_retries", 3)
	v.SetDefault("media.worker_count", 4)
	v.SetDefault("indexing.page_size", 50)
	v.SetDefault("indexing.max_pages", 200)
	v.SetDefault("indexing.max_consecutive_retries", 3)
	v.SetDefault("indexing.max_concurrent_jobs", 4)

	if err := v.ReadInConfig(); err != nil {
		// Viper reports a missing file as ConfigFileNotFoundError in
		// discovery mode but as a bare path error when the file was set
		// explicitly. Either way, fall back to environment variables.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config IndexerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks cross-field constraints the defaults cannot guarantee
func validate(cfg *IndexerConfig) error {
	for name, rl := range map[string]RateLimitConfig{
		"marketplace":   cfg.Marketplace.RateLimit,
		"chain_indexer": cfg.ChainIndexer.RateLimit,
	} {
		if rl.BaseDelay <= 0 {
			return fmt.Errorf("%s.rate_limit.base_delay must be positive", name)
		}
		if rl.MaxDelay < rl.BaseDelay {
			return fmt.Errorf("%s.rate_limit.max_delay must be >= base_delay", name)
		}
		if rl.BackoffMultiplier <= 1.0 {
			return fmt.Errorf("%s.rate_limit.backoff_multiplier must be > 1", name)
		}
	}

	if cfg.Media.SizeBudgetBytes <= 0 {
		return errors.New("media.size_budget_bytes must be positive")
	}
	if cfg.Media.MinQuality <= 0 || cfg.Media.MinQuality > cfg.Media.InitialQuality {
		return errors.New("media.min_quality must be in (0, initial_quality]")
	}
	if cfg.Media.ShrinkPercentage <= 0 || cfg.Media.ShrinkPercentage >= 100 {
		return errors.New("media.shrink_percentage must be in (0, 100)")
	}
	if len(cfg.URI.IPFSGateways) == 0 {
		return errors.New("uri.ipfs_gateways must not be empty")
	}

	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("ARTWORK_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"registry_path",
		// Marketplace
		"marketplace.api_url",
		"marketplace.api_key",
		"marketplace.rate_limit.base_delay",
		"marketplace.rate_limit.max_delay",
		"marketplace.rate_limit.backoff_multiplier",
		"marketplace.rate_limit.max_retries",
		"marketplace.rate_limit.adaptive_threshold",
		"marketplace.rate_limit.batch_size",
		// Chain indexer
		"chain_indexer.api_url",
		"chain_indexer.rate_limit.base_delay",
		"chain_indexer.rate_limit.max_delay",
		"chain_indexer.rate_limit.backoff_multiplier",
		"chain_indexer.rate_limit.max_retries",
		"chain_indexer.rate_limit.adaptive_threshold",
		"chain_indexer.rate_limit.batch_size",
		// URI
		"uri.ipfs_gateways",
		"uri.arweave_gateway",
		"uri.gateway_timeout",
		"uri.archive_timeout",
		// Media
		"media.size_budget_bytes",
		"media.initial_quality",
		"media.min_quality",
		"media.quality_step",
		"media.shrink_percentage",
		"media.max_attempts",
		"media.upload_retries",
		"media.worker_count",
		// Cloudflare
		"cloudflare.account_id",
		"cloudflare.api_token",
		// Indexing
		"indexing.page_size",
		"indexing.max_pages",
		"indexing.max_consecutive_retries",
		"indexing.max_concurrent_jobs",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}
