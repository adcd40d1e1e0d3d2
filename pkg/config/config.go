// Package config loads and saves the addrscope TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/addrscope/config.toml (falling back to
// ~/.config). A missing file yields [Default]; a present file is overlaid on
// the defaults, so it only needs the keys that differ. A few secrets can be
// supplied through the environment instead of the file:
//
//	ADDRSCOPE_COINGECKO_API_KEY  categories.api_key
//	ADDRSCOPE_MONGO_URI          reveal.mongo_uri
//	ADDRSCOPE_REDIS_ADDR         cache.redis_addr
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/explorer"
	"github.com/matzehuels/addrscope/pkg/integrations/coingecko"
	"github.com/matzehuels/addrscope/pkg/layout"
	"github.com/matzehuels/addrscope/pkg/reveal/mongo"
)

const appName = "addrscope"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Reveal sources.
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceMongo  = "mongo"
)

// Config holds addrscope configuration.
type Config struct {
	Layout     LayoutConfig     `toml:"layout"`
	Server     ServerConfig     `toml:"server"`
	Cache      CacheConfig      `toml:"cache"`
	Reveal     RevealConfig     `toml:"reveal"`
	Categories CategoriesConfig `toml:"categories"`
}

// LayoutConfig holds the simulation constants and the frame clock.
type LayoutConfig struct {
	LinkDistance    float64  `toml:"link_distance" validate:"gt=0"`
	ChargeStrength  float64  `toml:"charge_strength"`
	AnchorX         float64  `toml:"anchor_x"`
	AnchorY         float64  `toml:"anchor_y"`
	AlphaMin        float64  `toml:"alpha_min" validate:"gt=0,lt=1"`
	AlphaDecay      float64  `toml:"alpha_decay" validate:"gt=0,lt=1"`
	VelocityDecay   float64  `toml:"velocity_decay" validate:"gte=0,lt=1"`
	DragAlphaTarget float64  `toml:"drag_alpha_target" validate:"gte=0,lte=1"`
	RevealAlpha     float64  `toml:"reveal_alpha" validate:"gt=0,lte=1"`
	FrameInterval   Duration `toml:"frame_interval" validate:"gt=0"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr     string `toml:"addr" validate:"required"`
	MaxViews int    `toml:"max_views" validate:"gt=0"`
}

// CacheConfig selects the response cache for upstream data.
type CacheConfig struct {
	Backend   string   `toml:"backend" validate:"oneof=file redis none"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr" validate:"required_if=Backend redis"`
	TTL       Duration `toml:"ttl" validate:"gte=0"`
}

// RevealConfig selects where reveal step subgraphs come from.
type RevealConfig struct {
	Source     string `toml:"source" validate:"oneof=static file mongo"`
	Path       string `toml:"path" validate:"required_if=Source file"`
	MongoURI   string `toml:"mongo_uri" validate:"required_if=Source mongo"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CategoriesConfig configures the market-category upstream.
type CategoriesConfig struct {
	Endpoint string   `toml:"endpoint" validate:"required,url"`
	APIKey   string   `toml:"api_key"`
	Limit    int      `toml:"limit" validate:"gt=0,lte=250"`
	Timeout  Duration `toml:"timeout" validate:"gt=0"`
}

// Default returns the default configuration.
func Default() *Config {
	lc := layout.DefaultConfig()
	return &Config{
		Layout: LayoutConfig{
			LinkDistance:    lc.LinkDistance,
			ChargeStrength:  lc.ChargeStrength,
			AnchorX:         lc.AnchorX,
			AnchorY:         lc.AnchorY,
			AlphaMin:        lc.AlphaMin,
			AlphaDecay:      lc.AlphaDecay,
			VelocityDecay:   lc.VelocityDecay,
			DragAlphaTarget: lc.DragAlphaTarget,
			RevealAlpha:     0.8,
			FrameInterval:   Duration(explorer.DefaultFrameInterval),
		},
		Server: ServerConfig{
			Addr:     ":8080",
			MaxViews: 128,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     CacheDir(),
			TTL:     Duration(coingecko.DefaultCacheTTL),
		},
		Reveal: RevealConfig{
			Source:     SourceStatic,
			Database:   mongo.DefaultDatabase,
			Collection: mongo.DefaultCollection,
		},
		Categories: CategoriesConfig{
			Endpoint: coingecko.DefaultEndpoint,
			Limit:    coingecko.DefaultLimit,
			Timeout:  Duration(10 * time.Second),
		},
	}
}

// Dir returns the addrscope config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the default directory of the file cache.
func CacheDir() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		if d, err := os.UserCacheDir(); err == nil {
			dir = d
		} else {
			dir = os.TempDir()
		}
	}
	return filepath.Join(dir, appName)
}

// Load reads the config file at path, or [Path] when path is empty. A
// missing file is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, or [Path] when path is empty.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := Encode(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return os.WriteFile(path, data, 0o644)
}

// Encode returns cfg as a TOML document.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks every section against its constraints.
func (c *Config) Validate() error {
	return errors.ValidateStruct(c, errors.ErrCodeInvalidConfig)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ADDRSCOPE_COINGECKO_API_KEY"); v != "" {
		c.Categories.APIKey = v
	}
	if v := os.Getenv("ADDRSCOPE_MONGO_URI"); v != "" {
		c.Reveal.MongoURI = v
	}
	if v := os.Getenv("ADDRSCOPE_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
}

// =============================================================================
// Converters
// =============================================================================

// LayoutConfig returns the simulation constants. Constants not exposed in
// the file keep their defaults.
func (c *Config) LayoutConfig() layout.Config {
	lc := layout.DefaultConfig()
	lc.LinkDistance = c.Layout.LinkDistance
	lc.ChargeStrength = c.Layout.ChargeStrength
	lc.AnchorX = c.Layout.AnchorX
	lc.AnchorY = c.Layout.AnchorY
	lc.AlphaMin = c.Layout.AlphaMin
	lc.AlphaDecay = c.Layout.AlphaDecay
	lc.VelocityDecay = c.Layout.VelocityDecay
	lc.DragAlphaTarget = c.Layout.DragAlphaTarget
	return lc
}

// ExplorerOptions returns session options without a logger.
func (c *Config) ExplorerOptions() explorer.Options {
	return explorer.Options{
		Layout:      c.LayoutConfig(),
		RevealAlpha: c.Layout.RevealAlpha,
	}
}

// MongoConfig returns the reveal collection settings.
func (c *Config) MongoConfig() mongo.Config {
	return mongo.Config{
		URI:        c.Reveal.MongoURI,
		Database:   c.Reveal.Database,
		Collection: c.Reveal.Collection,
	}
}

// CoinGeckoOptions returns the categories client options without a logger.
func (c *Config) CoinGeckoOptions() coingecko.Options {
	return coingecko.Options{
		Endpoint: c.Categories.Endpoint,
		APIKey:   c.Categories.APIKey,
		Limit:    c.Categories.Limit,
		CacheTTL: c.Cache.TTL.Std(),
	}
}
