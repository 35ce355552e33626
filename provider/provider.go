package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ErrUnexpectedStatus matches HTTP responses other than 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// DataProvider yields one document per call.
type DataProvider interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FileProvider reads a document from disk.
type FileProvider struct {
	Path string
}

func (p FileProvider) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.Path, err)
	}
	return data, nil
}

// HTTPProvider GETs a document. A nil Client means http.DefaultClient.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

func (p HTTPProvider) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("bad request for %s: %w", redact(p.URL), err)
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", redact(p.URL), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrUnexpectedStatus, resp.StatusCode, redact(p.URL))
	}
	return io.ReadAll(resp.Body)
}

// Open returns an HTTPProvider for http(s) URLs and a FileProvider for
// anything else.
func Open(urlOrPath string, client *http.Client) DataProvider {
	if strings.HasPrefix(urlOrPath, "http://") || strings.HasPrefix(urlOrPath, "https://") {
		return HTTPProvider{URL: urlOrPath, Client: client}
	}
	return FileProvider{Path: urlOrPath}
}

// redact drops the query string, which may carry API credentials.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	return u.String()
}
