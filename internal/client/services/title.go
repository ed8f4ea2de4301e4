package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dmitrijs2005/hackorsnooze/internal/common"
)

// maxTitleLen caps looked-up titles.
const maxTitleLen = 200

// TitleResolver finds a human title for a story URL.
type TitleResolver interface {
	Resolve(ctx context.Context, storyURL string) (string, error)
}

// HTMLTitleResolver fetches the page and reads its <title>, falling back to
// the og:title meta tag.
type HTMLTitleResolver struct {
	client *http.Client
}

// NewHTMLTitleResolver wires an HTTP client; nil means a 10s-timeout client.
func NewHTMLTitleResolver(client *http.Client) *HTMLTitleResolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTMLTitleResolver{client: client}
}

func (r *HTMLTitleResolver) Resolve(ctx context.Context, storyURL string) (string, error) {
	u, err := url.Parse(storyURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("not an http(s) url: %q", storyURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", common.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		title, _ = doc.Find(`meta[property="og:title"]`).First().Attr("content")
	}
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return "", fmt.Errorf("no title in %s", storyURL)
	}
	return common.Truncate(title, maxTitleLen), nil
}
