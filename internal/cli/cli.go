package cli

import (
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/addrscope/pkg/buildinfo"
	"github.com/matzehuels/addrscope/pkg/cache"
	"github.com/matzehuels/addrscope/pkg/config"
	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/explorer"
	"github.com/matzehuels/addrscope/pkg/integrations/coingecko"
	"github.com/matzehuels/addrscope/pkg/reveal"
	"github.com/matzehuels/addrscope/pkg/reveal/mongo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "addrscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "addrscope explores blockchain address graphs step by step",
		Long: `addrscope is a progressive graph explorer for blockchain addresses.

It starts from a small graph of addresses, reveals the next predefined
subgraph whenever an unexpanded address is clicked, and keeps a
force-directed layout running while the graph grows.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.categoriesCommand())
	root.AddCommand(c.revealCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// sessionOptions returns explorer options from the configuration.
func (c *CLI) sessionOptions() (explorer.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return explorer.Options{}, err
	}
	opts := cfg.ExplorerOptions()
	opts.Logger = c.Logger
	return opts, nil
}

// newProvider opens the configured reveal source. The returned close
// function is never nil.
func (c *CLI) newProvider(ctx context.Context, source string) (reveal.Provider, func(), error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	if source == "" {
		source = cfg.Reveal.Source
	}

	noop := func() {}
	switch source {
	case config.SourceStatic:
		return reveal.Default(), noop, nil
	case config.SourceFile:
		p, err := reveal.LoadFile(cfg.Reveal.Path)
		if err != nil {
			return nil, nil, err
		}
		return p, noop, nil
	case config.SourceMongo:
		p, err := mongo.Connect(ctx, cfg.MongoConfig())
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := p.Close(context.Background()); err != nil {
				c.Logger.Warn("close mongo", "err", err)
			}
		}
		return p, closer, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "unknown reveal source %q", source)
}

// newCache opens the configured response cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cache.DefaultRedisPrefix)
	case config.CacheFile:
		return cache.NewFileCache(cfg.Cache.Dir)
	default:
		return cache.NewNullCache(), nil
	}
}

// newCategoriesClient builds the CoinGecko client over the configured cache.
func (c *CLI) newCategoriesClient(ctx context.Context, noCache bool) (*coingecko.Client, func(), error) {
	cfg, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}

	opts := cfg.CoinGeckoOptions()
	opts.Logger = c.Logger
	client := coingecko.NewClient(cc, opts)
	client.SetHTTPClient(&http.Client{Timeout: cfg.Categories.Timeout.Std()})
	return client, func() { _ = cc.Close() }, nil
}
