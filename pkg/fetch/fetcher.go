// Package fetch downloads reference URLs and reduces them to plain text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ai-editor-be/internal/pkg/logger"
)

const maxBodyBytes = 4 << 20

// Fetcher fetches a batch of URLs concurrently through a bounded worker
// pool. A URL that fails to fetch yields an empty result so the rest of
// the batch still contributes context.
type Fetcher struct {
	client  *http.Client
	workers int
	log     logger.ILogger
}

func NewFetcher(workers int, log logger.ILogger) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{
		client:  &http.Client{Timeout: 15 * time.Second},
		workers: workers,
		log:     log,
	}
}

// Result pairs a fetched URL with its extracted text. Text is empty
// when the fetch or extraction failed.
type Result struct {
	URL  string
	Text string
}

// FetchAll downloads all URLs and returns results in input order.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < f.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Result{URL: urls[i], Text: f.fetchOne(ctx, urls[i])}
			}
		}()
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.log.Warn("fetch", "invalid url", map[string]interface{}{"url": url, "error": err.Error()})
		return ""
	}
	req.Header.Set("User-Agent", "ai-editor-be/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warn("fetch", "request failed", map[string]interface{}{"url": url, "error": err.Error()})
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Warn("fetch", "non-200 response", map[string]interface{}{"url": url, "status": resp.StatusCode})
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		f.log.Warn("fetch", "read body failed", map[string]interface{}{"url": url, "error": err.Error()})
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		text, err := htmlToText(string(body))
		if err != nil {
			f.log.Warn("fetch", "html parse failed", map[string]interface{}{"url": url, "error": err.Error()})
			return ""
		}
		return text
	}
	return string(body)
}

// htmlToText strips scripts, styles and markup, keeping visible text.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var b strings.Builder
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		b.WriteString(s.Text())
	})
	text := b.String()
	if text == "" {
		text = doc.Text()
	}

	// Collapse runs of whitespace left behind by removed tags.
	return strings.Join(strings.Fields(text), " "), nil
}
