package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"CounterPicker/internal/ports"
)

const (
	// DefaultEndpoint is the MediaWiki API of the hero wiki.
	DefaultEndpoint  = "https://mobile-legends.fandom.com/api.php"
	defaultUserAgent = "CounterPicker/1.0"
	membersPageSize  = "500"
	imagesBatchSize  = 50
)

var (
	// ErrMalformedResponse marks bodies that are not the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed wiki response")
	// ErrPageMissing marks a page the wiki reports as missing or invalid.
	ErrPageMissing = errors.New("wiki page missing")
)

// Options configures a Client.
type Options struct {
	Endpoint          string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxPages          int
	HTTPClient        *http.Client
}

// Client talks to a MediaWiki query API.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	maxPages  int
}

var (
	_ ports.CategorySource = (*Client)(nil)
	_ ports.CatalogSource  = (*Client)(nil)
)

// NewClient wires an HTTP client; the timeout defaults to 20 seconds and
// RequestsPerSecond <= 0 disables client-side rate limiting.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		endpoint:  endpoint,
		userAgent: ua,
		http:      client,
		limiter:   limiter,
		maxPages:  opts.MaxPages,
	}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type category struct {
	Title string `json:"title"`
}

type pageImage struct {
	Source string `json:"source"`
}

type page struct {
	Title      string     `json:"title"`
	Missing    *string    `json:"missing"`
	Invalid    *string    `json:"invalid"`
	Categories []category `json:"categories"`
	Original   *pageImage `json:"original"`
	Thumbnail  *pageImage `json:"thumbnail"`
}

type member struct {
	Title string `json:"title"`
}

type queryResponse struct {
	Continue map[string]string `json:"continue"`
	Error    *apiError         `json:"error"`
	Query    struct {
		Pages           map[string]page `json:"pages"`
		CategoryMembers []member        `json:"categorymembers"`
	} `json:"query"`
}

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse struct {
		Title string `json:"title"`
		Text  struct {
			HTML string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
}

// PageCategories returns the visible categories of a page, following
// clcontinue until the listing is exhausted.
func (c *Client) PageCategories(ctx context.Context, title string) (ports.PageCategories, error) {
	exists := true
	labels, err := Paginate(ctx, c.maxPages, func(ctx context.Context, token string) (Page[string], error) {
		params := url.Values{}
		params.Set("action", "query")
		params.Set("prop", "categories")
		params.Set("cllimit", "max")
		params.Set("clshow", "!hidden")
		params.Set("titles", title)

		var resp queryResponse
		if err := c.query(ctx, params, token, &resp); err != nil {
			return Page[string]{}, err
		}

		first, ok := firstPage(resp.Query.Pages)
		if !ok || first.Missing != nil || first.Invalid != nil {
			exists = false
			return Page[string]{}, nil
		}

		cats := make([]string, 0, len(first.Categories))
		for _, cat := range first.Categories {
			if cat.Title != "" {
				cats = append(cats, cat.Title)
			}
		}
		return Page[string]{Items: cats, Next: encodeContinue(resp.Continue)}, nil
	})
	if err != nil {
		return ports.PageCategories{}, fmt.Errorf("categories of %q: %w", title, err)
	}
	if !exists {
		return ports.PageCategories{Exists: false}, nil
	}
	return ports.PageCategories{Exists: true, Categories: labels}, nil
}

// CategoryMembers lists namespace-0 page titles of a category.
func (c *Client) CategoryMembers(ctx context.Context, categoryTitle string) ([]string, error) {
	titles, err := Paginate(ctx, c.maxPages, func(ctx context.Context, token string) (Page[string], error) {
		params := url.Values{}
		params.Set("action", "query")
		params.Set("list", "categorymembers")
		params.Set("cmtitle", categoryTitle)
		params.Set("cmlimit", membersPageSize)
		params.Set("cmnamespace", "0")

		var resp queryResponse
		if err := c.query(ctx, params, token, &resp); err != nil {
			return Page[string]{}, err
		}

		chunk := make([]string, 0, len(resp.Query.CategoryMembers))
		for _, m := range resp.Query.CategoryMembers {
			if m.Title != "" {
				chunk = append(chunk, m.Title)
			}
		}
		return Page[string]{Items: chunk, Next: encodeContinue(resp.Continue)}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("members of %s: %w", categoryTitle, err)
	}
	return titles, nil
}

type titledImage struct {
	title string
	url   string
}

// PageImages resolves a lead image URL per title, querying 50 titles per batch.
func (c *Client) PageImages(ctx context.Context, titles []string) (map[string]string, error) {
	byTitle := make(map[string]string, len(titles))
	for start := 0; start < len(titles); start += imagesBatchSize {
		end := min(start+imagesBatchSize, len(titles))
		batch := strings.Join(titles[start:end], "|")

		images, err := Paginate(ctx, c.maxPages, func(ctx context.Context, token string) (Page[titledImage], error) {
			params := url.Values{}
			params.Set("action", "query")
			params.Set("prop", "pageimages")
			params.Set("piprop", "original|thumbnail")
			params.Set("pithumbsize", "512")
			params.Set("titles", batch)

			var resp queryResponse
			if err := c.query(ctx, params, token, &resp); err != nil {
				return Page[titledImage]{}, err
			}

			chunk := make([]titledImage, 0, len(resp.Query.Pages))
			for _, p := range resp.Query.Pages {
				if p.Title == "" {
					continue
				}
				chunk = append(chunk, titledImage{title: p.Title, url: imageURL(p)})
			}
			return Page[titledImage]{Items: chunk, Next: encodeContinue(resp.Continue)}, nil
		})
		if err != nil {
			return nil, fmt.Errorf("page images: %w", err)
		}

		for _, img := range images {
			if img.url != "" || byTitle[img.title] == "" {
				byTitle[img.title] = img.url
			}
		}
	}
	return byTitle, nil
}

// PageLinks returns the titles of existing articles linked from a page.
func (c *Client) PageLinks(ctx context.Context, pageTitle string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", pageTitle)
	params.Set("prop", "text")

	var resp parseResponse
	if err := c.query(ctx, params, "", &resp); err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageTitle, err)
	}
	if resp.Error != nil {
		if resp.Error.Code == "missingtitle" {
			return nil, fmt.Errorf("parse %s: %w", pageTitle, ErrPageMissing)
		}
		return nil, fmt.Errorf("parse %s: %s: %s", pageTitle, resp.Error.Code, resp.Error.Info)
	}

	links, err := extractLinks(resp.Parse.Text.HTML)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageTitle, err)
	}
	return links, nil
}

func (c *Client) query(ctx context.Context, params url.Values, token string, v any) error {
	if token != "" {
		cont, err := url.ParseQuery(token)
		if err != nil {
			return fmt.Errorf("decode continuation: %w", err)
		}
		for key, vals := range cont {
			params[key] = vals
		}
	} else if params.Get("action") == "query" {
		params.Set("continue", "")
	}
	params.Set("format", "json")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request wiki: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wiki returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if qr, ok := v.(*queryResponse); ok && qr.Error != nil {
		return fmt.Errorf("wiki error %s: %s", qr.Error.Code, qr.Error.Info)
	}
	return nil
}

// encodeContinue turns the continue object into an opaque token. Encode
// sorts keys, so the same object always yields the same token.
func encodeContinue(cont map[string]string) string {
	if len(cont) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range cont {
		values.Set(k, v)
	}
	return values.Encode()
}

func firstPage(pages map[string]page) (page, bool) {
	if len(pages) == 0 {
		return page{}, false
	}
	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return pages[keys[0]], true
}

func imageURL(p page) string {
	if p.Original != nil && p.Original.Source != "" {
		return p.Original.Source
	}
	if p.Thumbnail != nil {
		return p.Thumbnail.Source
	}
	return ""
}
