package index

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/five82/mediabrowse/internal/location"
)

// Fetcher lists remote directory indexes. Implemented by *Client.
type Fetcher interface {
	FetchNames(ctx context.Context, indexURL string) ([]string, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client fetches HTTP directory index pages.
type Client struct {
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent      = "mediabrowse/0.1"
	defaultRequestTimeout = 15 * time.Second
	maxFetchSize          = 4 << 20
)

// NewClient builds a Client. A non-positive timeout uses the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// FetchNames issues one GET for indexURL and returns the entry names it links
// to, in document order. The first link is the parent-directory link by
// convention and is dropped; the rest are percent-decoded.
func (c *Client) FetchNames(ctx context.Context, indexURL string) ([]string, error) {
	resp, err := c.get(ctx, indexURL, "text/html")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	links, err := ExtractLinks(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return DecodeNames(links), nil
}

// Fetch returns the body of a remote file such as a saved playlist. Bodies
// larger than maxFetchSize are rejected.
func (c *Client) Fetch(ctx context.Context, fileURL string) ([]byte, error) {
	resp, err := c.get(ctx, fileURL, "*/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxFetchSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", fileURL, maxFetchSize)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, target, accept string) (*http.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", target, resp.StatusCode)
	}
	return resp, nil
}

// ExtractLinks returns every anchor href value in r, in document order.
func ExtractLinks(r io.Reader) ([]string, error) {
	var links []string
	tokenizer := html.NewTokenizer(r)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return nil, err
			}
			return links, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if strings.EqualFold(attr.Key, "href") {
					links = append(links, attr.Val)
					break
				}
			}
		}
	}
}

// DecodeNames drops the leading parent link and percent-decodes the rest.
func DecodeNames(links []string) []string {
	if len(links) <= 1 {
		return nil
	}
	names := make([]string, 0, len(links)-1)
	for _, link := range links[1:] {
		names = append(names, location.Unescape(link))
	}
	return names
}
