// Package enrich resolves preview images for post permalinks. It is a
// best-effort side lookup: every failure degrades to an empty image URL
// and never reaches the caller as an error.
package enrich

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"spyglass/pkg/logging"
)

const maxPreviewBytes = 2 << 20 // 2 MB

// PreviewFetcher resolves a post permalink to a preview image URL.
// Implementations must return "" on any failure.
type PreviewFetcher interface {
	PreviewImage(ctx context.Context, permalink string) string
}

// NoopFetcher always returns an empty image URL.
type NoopFetcher struct{}

func (NoopFetcher) PreviewImage(context.Context, string) string { return "" }

// HTTPFetcher fetches the permalink page and extracts the og:image meta
// tag. The request is bounded by the client timeout and the enclosing
// context.
type HTTPFetcher struct {
	client *http.Client
	logger logging.Logger

	// Observe, when set, is called with the outcome of each fetch
	// attempt ("success", "error", "rejected" or "missing").
	Observe func(status string)
}

func (f *HTTPFetcher) observe(status string) {
	if f.Observe != nil {
		f.Observe(status)
	}
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration, logger logging.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// PreviewImage resolves the preview image for a permalink, or "".
func (f *HTTPFetcher) PreviewImage(ctx context.Context, permalink string) string {
	target := CanonicalPermalink(permalink)
	if target == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ""
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.WithError(err).WithField("permalink", target).Debug("Preview fetch failed")
		f.observe("error")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		f.logger.WithFields(logging.Fields{"permalink": target, "status": resp.StatusCode}).Debug("Preview fetch rejected")
		f.observe("rejected")
		return ""
	}

	image, err := extractOGImage(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		f.logger.WithError(err).WithField("permalink", target).Debug("Preview parse failed")
		f.observe("error")
		return ""
	}
	if image == "" {
		f.observe("missing")
		return ""
	}
	f.observe("success")
	return image
}

// CanonicalPermalink strips query parameters and guarantees a trailing
// slash, the form the upstream pages resolve previews for.
func CanonicalPermalink(permalink string) string {
	permalink = strings.TrimSpace(permalink)
	if permalink == "" {
		return ""
	}
	u, err := url.Parse(permalink)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// extractOGImage walks the HTML token stream for the og:image meta tag
// and returns its content attribute.
func extractOGImage(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			err := tokenizer.Err()
			if err == io.EOF {
				return "", nil
			}
			return "", err
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}
			var property, content string
			for {
				key, val, more := tokenizer.TagAttr()
				switch string(key) {
				case "property":
					property = string(val)
				case "content":
					content = string(val)
				}
				if !more {
					break
				}
			}
			if property == "og:image" {
				return content, nil
			}
		}
	}
}
