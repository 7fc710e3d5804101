package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"feedreader/infrastructure/cache/memory"
	"feedreader/infrastructure/cache/sqlite"
	"feedreader/infrastructure/logger/structured"
	"feedreader/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rss = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>%[1]s</title>
<item><title>%[1]s one</title><link>http://example.com/%[1]s/1</link><description><![CDATA[<p>first</p><script>track()</script>]]></description></item>
<item><title>%[1]s two</title><link>http://example.com/%[1]s/2</link><description>second</description></item>
</channel></rss>`

func fixture(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprintf(w, rss, r.URL.Path[1:])
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
feeds:
  - name: Alpha
    url: %[1]s/alpha
  - name: Beta
    url: %[1]s/beta
`, srv.URL)), 0o644))

	return &config.Config{
		Server: config.ServerConfig{Port: "0", RateLimit: 10},
		Cache: config.CacheConfig{
			Type:   "memory",
			Memory: config.MemoryConfig{DefaultExpiration: 60},
		},
		Reader: config.ReaderConfig{FeedsFile: path, LoadTimeout: 5 * time.Second},
	}
}

func quietLogger() *structured.Logger {
	return structured.New(structured.Options{Level: "error", Output: os.Stderr})
}

func TestNew_LoadsFeedsFile(t *testing.T) {
	srv, _ := fixture(t)
	a, err := New(testConfig(t, srv), quietLogger())
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 2, a.Feeds.Len())
	assert.Equal(t, "Alpha", a.Feeds[0].Name)
	assert.IsType(t, &memory.MemoryCache{}, a.Cache)
}

func TestNew_MissingFeedsFile(t *testing.T) {
	cfg := &config.Config{Reader: config.ReaderConfig{FeedsFile: filepath.Join(t.TempDir(), "nope.yaml")}}

	_, err := New(cfg, quietLogger())
	assert.Error(t, err)
}

func TestNew_CacheBackends(t *testing.T) {
	srv, _ := fixture(t)

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		cfg := testConfig(t, srv)
		cfg.Cache.Type = "redis"
		cfg.Cache.Redis.Address = "127.0.0.1:1"

		a, err := New(cfg, quietLogger())
		require.NoError(t, err)
		defer a.Close()
		assert.IsType(t, &memory.MemoryCache{}, a.Cache)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(t, srv)
		cfg.Cache.Type = "sqlite"
		cfg.Cache.SQLitePath = filepath.Join(t.TempDir(), "cache.db")

		a, err := New(cfg, quietLogger())
		require.NoError(t, err)
		assert.IsType(t, &sqlite.Client{}, a.Cache)
		assert.NoError(t, a.Close())
	})
}

func TestNew_FullContentRendersSanitisedBodies(t *testing.T) {
	srv, _ := fixture(t)

	for _, full := range []bool{false, true} {
		t.Run(fmt.Sprintf("full content %v", full), func(t *testing.T) {
			cfg := testConfig(t, srv)
			cfg.Reader.FullContent = full
			a, err := New(cfg, quietLogger())
			require.NoError(t, err)
			defer a.Close()

			page, err := a.NewPage()
			require.NoError(t, err)
			require.NoError(t, page.Load(context.Background(), 0).Wait(context.Background()))

			html := page.Content().HTML
			assert.Equal(t, full, strings.Contains(html, "entry-body"))
			assert.NotContains(t, html, "<script>")
		})
	}
}

func TestWarm_FillsCache(t *testing.T) {
	srv, hits := fixture(t)
	a, err := New(testConfig(t, srv), quietLogger())
	require.NoError(t, err)
	defer a.Close()

	a.Warm(context.Background())
	require.EqualValues(t, 2, atomic.LoadInt32(hits))

	page, err := a.NewPage()
	require.NoError(t, err)
	require.NoError(t, page.Load(context.Background(), 1).Wait(context.Background()))

	assert.EqualValues(t, 2, atomic.LoadInt32(hits), "load served from the warmed cache")
	assert.Equal(t, "Beta", page.Title())
}

func TestRunChecks(t *testing.T) {
	srv, _ := fixture(t)
	a, err := New(testConfig(t, srv), quietLogger())
	require.NoError(t, err)
	defer a.Close()

	report, err := a.RunChecks(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK(), report.Summary())
	assert.Equal(t, 7, report.Passed)
}
