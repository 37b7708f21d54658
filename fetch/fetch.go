// Package fetch provides schema document fetchers: over HTTP from a
// live device, from a directory snapshot, or from memory.
package fetch

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andaru/scpdgen/generr"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Fetcher returns the text of the document at url. Fetchers do not
// retry.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// DefaultTimeout is the HTTP request timeout used when none is given
const DefaultTimeout = 30 * time.Second

// maxDocumentSize bounds the size of a fetched document
const maxDocumentSize = 16 << 20

// HTTP fetches documents over HTTP
type HTTP struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTP returns an HTTP fetcher with the given request timeout
func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTP{Client: &http.Client{Timeout: timeout}, Timeout: timeout}
}

// Fetch implements Fetcher. Transport failures, non-2xx responses and
// non-text bodies fail with a fetch error.
func (h *HTTP) Fetch(ctx context.Context, url string) (string, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithCause(err)))
	}
	if glog.V(1) {
		glog.Infof("GET %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithCause(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithMessage(resp.Status)))
	}
	if ct := resp.Header.Get("Content-Type"); !textual(ct) {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithMessage("non-text content type "+ct)))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithCause(err)))
	}
	return string(b), nil
}

// textual reports whether a Content-Type header value denotes text.
// An absent header is accepted; embedded servers often omit it.
func textual(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "text/") || mt == "application/xml" || strings.HasSuffix(mt, "+xml")
}

// Dir fetches documents from a directory snapshot of a device. Only
// the path of the URL is used, relative to the directory.
type Dir string

// Fetch implements Fetcher
func (d Dir) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithCause(err)))
	}
	path := filepath.Join(string(d), filepath.FromSlash(Path(url)))
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithPath(path), generr.WithCause(err)))
	}
	return string(b), nil
}

// Map fetches documents from memory, keyed by URL or by URL path
type Map map[string]string

// Fetch implements Fetcher
func (m Map) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(generr.FetchFailed(url, generr.WithCause(err)))
	}
	if text, ok := m[url]; ok {
		return text, nil
	}
	if text, ok := m[Path(url)]; ok {
		return text, nil
	}
	return "", errors.WithStack(generr.FetchFailed(url, generr.WithMessage("not found")))
}

// Path returns the path component of url, e.g. "/tr64desc.xml" for
// "http://fritz.box:49000/tr64desc.xml". A url without a scheme is
// returned as is.
func Path(url string) string {
	i := strings.Index(url, "://")
	if i < 0 {
		return url
	}
	rest := url[i+3:]
	j := strings.IndexByte(rest, '/')
	if j < 0 {
		return "/"
	}
	return rest[j:]
}
