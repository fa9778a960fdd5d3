package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spyglass/pkg/logging"
)

func TestCanonicalPermalink(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com/p/abc123?igsh=xyz", "https://example.com/p/abc123/"},
		{"https://example.com/p/abc123/", "https://example.com/p/abc123/"},
		{"https://example.com/p/abc123/#frag", "https://example.com/p/abc123/"},
		{"", ""},
		{"   ", ""},
		{"not a url", ""},
		{"/relative/only", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanonicalPermalink(tc.in), "input %q", tc.in)
	}
}

func TestPreviewImageExtractsOGImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
			<meta property="og:title" content="Post"/>
			<meta property="og:image" content="https://cdn.example.com/img.jpg"/>
		</head><body></body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2*time.Second, logging.NewLogger())
	got := f.PreviewImage(context.Background(), srv.URL+"/p/1?x=1")
	assert.Equal(t, "https://cdn.example.com/img.jpg", got)
}

func TestPreviewImageMissingTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>no preview</title></head></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2*time.Second, logging.NewLogger())
	assert.Equal(t, "", f.PreviewImage(context.Background(), srv.URL))
}

func TestPreviewImageHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(2*time.Second, logging.NewLogger())
	assert.Equal(t, "", f.PreviewImage(context.Background(), srv.URL))
}

func TestPreviewImageTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(20*time.Millisecond, logging.NewLogger())
	assert.Equal(t, "", f.PreviewImage(context.Background(), srv.URL), "timeout degrades to empty, never errors")
}

func TestPreviewImageUnreachable(t *testing.T) {
	f := NewHTTPFetcher(50*time.Millisecond, logging.NewLogger())
	assert.Equal(t, "", f.PreviewImage(context.Background(), "http://127.0.0.1:1/p/"))
}

func TestNoopFetcher(t *testing.T) {
	assert.Equal(t, "", NoopFetcher{}.PreviewImage(context.Background(), "https://example.com/p/1/"))
}
