// Package fetch resolves file URLs and links to raw text before the
// analysis pipeline runs. Every failure here surfaces as an
// extraction error; the pipeline itself never performs I/O.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/cognicore/propdoc/pkg/propdoc/internalerr"
)

// TextExtractor turns container bytes (PDF, DOCX) into plain text.
// Byte-level extraction is the embedder's concern; a Fetcher without
// one rejects those types.
type TextExtractor interface {
	Extract(data []byte, mimeType string) (string, error)
}

// Options configures a Fetcher.
type Options struct {
	Client    *http.Client
	Extractor TextExtractor
	RPS       float64 // outbound requests per second, 0 means 1
	MaxBytes  int64   // response size cap, 0 means 4 MiB
}

// Fetcher downloads documents with a shared rate limit.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	extractor TextExtractor
	maxBytes  int64
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	rps := opts.RPS
	if rps <= 0 {
		rps = 1
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 4 << 20
	}
	return &Fetcher{
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		extractor: opts.Extractor,
		maxBytes:  maxBytes,
	}
}

// FetchLink downloads a web page and returns its visible text.
func (f *Fetcher) FetchLink(ctx context.Context, link string) (string, error) {
	body, _, err := f.download(ctx, link)
	if err != nil {
		return "", err
	}
	return HTMLToText(string(body)), nil
}

// FetchFile downloads a stored file and extracts its text according
// to the declared MIME type.
func (f *Fetcher) FetchFile(ctx context.Context, fileURL, mimeType string) (string, error) {
	body, _, err := f.download(ctx, fileURL)
	if err != nil {
		return "", err
	}

	switch {
	case strings.Contains(mimeType, "html") || strings.HasPrefix(mimeType, "text/"):
		return HTMLToText(string(body)), nil
	case mimeType == "application/pdf" || strings.Contains(mimeType, "word"):
		if f.extractor == nil {
			return "", fmt.Errorf("%w: no extractor for %s", internalerr.ErrExtraction, mimeType)
		}
		text, err := f.extractor.Extract(body, mimeType)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", internalerr.ErrExtraction, mimeType, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: unsupported type %q", internalerr.ErrExtraction, mimeType)
	}
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: bad url %q: %v", internalerr.ErrExtraction, url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", internalerr.ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: status %d from %s", internalerr.ErrExtraction, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", internalerr.ErrExtraction, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// HTMLToText parses markup and returns the visible text, skipping
// script and style subtrees. Unparseable input falls back to the
// input unchanged; the normalizer still strips stray tags.
func HTMLToText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}
