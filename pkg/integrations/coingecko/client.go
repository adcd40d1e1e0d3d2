// Package coingecko fetches market categories from the CoinGecko API.
//
// The result is a two-level hierarchy ready for a treemap: a root named
// "Cryptocurrencies" whose value is the total market cap of the first
// [DefaultLimit] categories, with one child per category.
package coingecko

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/addrscope/pkg/cache"
	"github.com/matzehuels/addrscope/pkg/integrations"
)

// Defaults for [Options].
const (
	DefaultEndpoint = "https://api.coingecko.com/api/v3/coins/categories"
	DefaultLimit    = 50
	DefaultCacheTTL = 10 * time.Minute

	// APIKeyHeader carries the demo API key.
	APIKeyHeader = "x-cg-demo-api-key"

	// RootName names the hierarchy root.
	RootName = "Cryptocurrencies"
)

// Category is one market category, reduced to the fields the treemap uses.
type Category struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	MarketCap          float64  `json:"market_cap"`
	MarketCapChange24h float64  `json:"market_cap_change_24h"`
	Top3Coins          []string `json:"top_3_coins"`
	Volume24h          float64  `json:"volume_24h"`
	UpdatedAt          string   `json:"updated_at"`
}

// Categories is the hierarchy root.
type Categories struct {
	Name     string     `json:"name"`
	Value    float64    `json:"value"`
	Children []Category `json:"children"`
}

// Options configures a [Client].
type Options struct {
	Endpoint string
	APIKey   string
	Limit    int
	CacheTTL time.Duration
	Logger   *log.Logger
}

// Client fetches categories.
type Client struct {
	*integrations.Client
	endpoint string
	limit    int
	logger   *log.Logger
}

// NewClient creates a client caching responses in c, which may be nil.
func NewClient(c cache.Cache, opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	var headers map[string]string
	if opts.APIKey != "" {
		headers = map[string]string{APIKeyHeader: opts.APIKey}
	}
	if c != nil {
		c = cache.Instrument(c, "categories")
	}
	return &Client{
		Client:   integrations.NewClient(c, "coingecko:", opts.CacheTTL, headers),
		endpoint: opts.Endpoint,
		limit:    opts.Limit,
		logger:   opts.Logger,
	}
}

// FetchCategories returns the category hierarchy, or nil if the request or
// decoding failed. Failures are logged and never retried.
func (c *Client) FetchCategories(ctx context.Context, refresh bool) *Categories {
	var out Categories
	key := cache.CategoriesKey(c.endpoint, c.limit)
	err := c.Cached(ctx, key, refresh, &out, func() error {
		var raw []Category
		if err := c.Get(ctx, c.endpoint, &raw); err != nil {
			return err
		}
		out = Build(raw, c.limit)
		return nil
	})
	if err != nil {
		c.logger.Warn("categories fetch failed", "endpoint", c.endpoint, "err", err)
		return nil
	}
	return &out
}

// Build keeps the first limit categories and sums their market caps into
// the root value.
func Build(raw []Category, limit int) Categories {
	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}
	root := Categories{Name: RootName, Children: make([]Category, 0, len(raw))}
	for _, cat := range raw {
		if cat.Top3Coins == nil {
			cat.Top3Coins = []string{}
		}
		root.Value += cat.MarketCap
		root.Children = append(root.Children, cat)
	}
	return root
}
