package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/patrickmn/go-cache"
)

// ErrArticleUnavailable is returned when a URL cannot be turned into article text.
var ErrArticleUnavailable = errors.New("article unavailable")

// articleSelectors are tried in order when readability finds no content.
var articleSelectors = []string{
	"article",
	".article-content",
	".article-body",
	".story-content",
	".post-content",
	"#article-body",
	"main article",
}

// ArticleRepository fetches readable article content from the web.
type ArticleRepository interface {
	Fetch(ctx context.Context, rawURL string) (*dto.Article, error)
}

// NewArticleRepository creates an HTTP article fetcher with an in-memory memo.
func NewArticleRepository(cfg config.Fetcher, client *http.Client, log *logger.Logger) ArticleRepository {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	memoTTL := cfg.MemoTTL
	if memoTTL <= 0 {
		memoTTL = cache.NoExpiration
	}
	return &articleRepository{
		cfg:    cfg,
		client: client,
		memo:   cache.New(memoTTL, 2*memoTTL),
		logger: log,
	}
}

type articleRepository struct {
	cfg    config.Fetcher
	client *http.Client
	memo   *cache.Cache
	logger *logger.Logger
}

// Fetch downloads the page and extracts its title, main text and lead image.
func (r *articleRepository) Fetch(ctx context.Context, rawURL string) (*dto.Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid url %q", ErrArticleUnavailable, rawURL)
	}
	if cached, ok := r.memo.Get(rawURL); ok {
		article := *cached.(*dto.Article)
		return &article, nil
	}

	body, err := r.download(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	article, err := r.extract(parsed, body)
	if err != nil {
		r.logger.Error("Failed to extract article", logger.ErrorField(err), logger.StringField("url", rawURL))
		return nil, err
	}
	r.memo.SetDefault(rawURL, article)

	out := *article
	return &out, nil
}

func (r *articleRepository) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for article: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to fetch article", logger.ErrorField(err), logger.StringField("url", rawURL))
		return nil, fmt.Errorf("%w: %w", ErrArticleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("Failed to fetch article with non-200 status", logger.IntField("status", resp.StatusCode), logger.StringField("url", rawURL))
		return nil, fmt.Errorf("%w: status code %d", ErrArticleUnavailable, resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if r.cfg.MaxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, r.cfg.MaxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (r *articleRepository) extract(pageURL *url.URL, body []byte) (*dto.Article, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	article := &dto.Article{
		URL:      pageURL.String(),
		Title:    pageTitle(page),
		ImageURL: leadImage(pageURL, page),
	}

	text, err := readableText(string(body))
	if err != nil {
		r.logger.Warn("Readability failed, falling back to selectors", logger.ErrorField(err), logger.StringField("url", article.URL))
	}
	if text == "" {
		text = selectorText(page)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: no readable text", ErrArticleUnavailable)
	}
	article.Text = text
	return article, nil
}

func readableText(html string) (string, error) {
	doc, err := readability.NewDocument(html)
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}
	content, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}
	return blockText(content.Selection), nil
}

func selectorText(page *goquery.Document) string {
	page.Find("script, style, nav, footer, header, aside").Remove()
	for _, sel := range articleSelectors {
		if node := page.Find(sel).First(); node.Length() > 0 {
			if text := blockText(node); text != "" {
				return text
			}
		}
	}
	return blockText(page.Find("body"))
}

// blockText joins paragraph-level text with spaces so sentences stay separated.
func blockText(s *goquery.Selection) string {
	var parts []string
	s.Find("p, h1, h2, h3, li").Each(func(_ int, n *goquery.Selection) {
		if t := strings.TrimSpace(n.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		parts = append(parts, s.Text())
	}
	return utils.SafeText(utils.CollapseSpaces(strings.Join(parts, " ")))
}

func pageTitle(page *goquery.Document) string {
	if t, ok := page.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return utils.SafeText(strings.TrimSpace(t))
	}
	if t := strings.TrimSpace(page.Find("title").First().Text()); t != "" {
		return utils.SafeText(t)
	}
	return utils.SafeText(strings.TrimSpace(page.Find("h1").First().Text()))
}

func leadImage(pageURL *url.URL, page *goquery.Document) string {
	src, ok := page.Find(`meta[property="og:image"]`).Attr("content")
	if !ok || strings.TrimSpace(src) == "" {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return ""
	}
	return pageURL.ResolveReference(ref).String()
}
