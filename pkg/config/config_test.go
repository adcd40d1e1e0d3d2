package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/layout"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, layout.DefaultConfig(), cfg.LayoutConfig())
	assert.Equal(t, 16*time.Millisecond, cfg.Layout.FrameInterval.Std())
	assert.Equal(t, 0.8, cfg.Layout.RevealAlpha)
	assert.Equal(t, SourceStatic, cfg.Reveal.Source)
	assert.Equal(t, 50, cfg.Categories.Limit)
}

func TestPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "addrscope", "config.toml"), Path())

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "addrscope"), CacheDir())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Layout, cfg.Layout)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[layout]
link_distance = 120
frame_interval = "33ms"

[server]
addr = "127.0.0.1:9000"

[cache]
backend = "none"
ttl = "1m"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Layout.LinkDistance)
	assert.Equal(t, 33*time.Millisecond, cfg.Layout.FrameInterval.Std())
	assert.Equal(t, -300.0, cfg.Layout.ChargeStrength, "unset keys keep defaults")
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.CoinGeckoOptions().CacheTTL)
	assert.Equal(t, 120.0, cfg.ExplorerOptions().Layout.LinkDistance)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "[layout\n", "parse"},
		{"bad duration", "[layout]\nframe_interval = \"soon\"\n", "parse"},
		{"backend", "[cache]\nbackend = \"s3\"\n", "Cache.Backend"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", "Cache.RedisAddr: field is required"},
		{"file source without path", "[reveal]\nsource = \"file\"\n", "Reveal.Path: field is required"},
		{"alpha min", "[layout]\nalpha_min = 2.0\n", "Layout.AlphaMin"},
		{"limit", "[categories]\nlimit = 0\n", "Categories.Limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "code = %s", errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDRSCOPE_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("ADDRSCOPE_COINGECKO_API_KEY", "demo")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[reveal]\nsource = \"mongo\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoConfig().URI)
	assert.Equal(t, "demo", cfg.CoinGeckoOptions().APIKey)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Server.MaxViews = 7
	cfg.Layout.FrameInterval = Duration(20 * time.Millisecond)

	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `frame_interval = "20ms"`)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server, got.Server)
	assert.Equal(t, cfg.Layout, got.Layout)
}
