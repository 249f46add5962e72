package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Nifty hits record high | Market Desk</title>
  <meta property="og:image" content="/images/nifty-chart.png">
</head>
<body>
  <nav><a href="/">Home</a> <a href="/markets">Markets</a></nav>
  <article>
    <h1>Nifty hits record high</h1>
    <p>The Nifty 50 surged 2.1% to a record high on Monday as foreign investors returned to Indian equities with strong inflows across banking and IT stocks.</p>
    <p>Analysts said the rally in the Nifty could extend this week if global cues remain supportive and crude prices stay below recent levels.</p>
    <p>Market breadth was strong, with advancing stocks outnumbering decliners by three to one on the National Stock Exchange during the session.</p>
  </article>
  <footer>Copyright Market Desk</footer>
</body>
</html>`

func newArticleServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/story", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, articleHTML)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestArticleRepository() ArticleRepository {
	return NewArticleRepository(config.Fetcher{
		UserAgent:    "test-agent",
		Timeout:      5 * time.Second,
		MaxBodyBytes: 1 << 20,
		MemoTTL:      time.Minute,
	}, nil, logger.NewNop())
}

func TestArticleRepository_Fetch(t *testing.T) {
	var hits int32
	srv := newArticleServer(t, &hits)
	repo := newTestArticleRepository()

	article, err := repo.Fetch(context.Background(), srv.URL+"/story")
	require.NoError(t, err)

	assert.Equal(t, "Nifty hits record high | Market Desk", article.Title)
	assert.Contains(t, article.Text, "record high")
	assert.Contains(t, article.Text, "Nifty")
	assert.Equal(t, srv.URL+"/images/nifty-chart.png", article.ImageURL)

	again, err := repo.Fetch(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	assert.Equal(t, article, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second fetch is served from the memo")
}

func TestArticleRepository_Errors(t *testing.T) {
	var hits int32
	srv := newArticleServer(t, &hits)
	repo := newTestArticleRepository()

	_, err := repo.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrArticleUnavailable)

	for _, raw := range []string{"", "ftp://example.com/a", "not a url", "https://"} {
		_, err := repo.Fetch(context.Background(), raw)
		assert.ErrorIs(t, err, ErrArticleUnavailable, raw)
	}
}
