// Package search proxies title and image lookups to external search APIs,
// memoizing results in a short-lived cache.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"slidecraft/internal/cache"
)

// Getter is the retrying JSON fetch primitive. Satisfied by *fetch.Client.
type Getter interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error
}

// DefaultWikiAPI is the MediaWiki query endpoint used unless overridden.
const DefaultWikiAPI = "https://en.wikipedia.org/w/api.php"

// Title is one title-search hit.
type Title struct {
	Title   string `json:"title"`
	PageID  int    `json:"pageid"`
	Snippet string `json:"snippet"`
}

// ImageInfo describes one resolved image file.
type ImageInfo struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WikiClient queries a MediaWiki-style API through the retrying fetcher.
type WikiClient struct {
	api   string
	hc    Getter
	cache *cache.Cache
}

// NewWikiClient creates a WikiClient. An empty api uses DefaultWikiAPI.
func NewWikiClient(api string, hc Getter, c *cache.Cache) *WikiClient {
	if api == "" {
		api = DefaultWikiAPI
	}
	return &WikiClient{api: api, hc: hc, cache: c}
}

// SearchTitles returns up to limit title hits for the query.
func (w *WikiClient) SearchTitles(ctx context.Context, query string, limit int) ([]Title, error) {
	key := cache.Key(fmt.Sprintf("wiki:search:%d", limit), query)
	if v, ok := w.cache.Get(key); ok {
		return v.([]Title), nil
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
		"format":   {"json"},
	}
	var body struct {
		Query struct {
			Search []Title `json:"search"`
		} `json:"query"`
	}
	if err := w.hc.GetJSON(ctx, w.api, params, &body); err != nil {
		return nil, fmt.Errorf("wiki title search: %w", err)
	}

	w.cache.Set(key, body.Query.Search)
	return body.Query.Search, nil
}

// ImageInfos resolves file URLs and dimensions for the given titles. The
// cache key is order-normalized, so equivalent title sets share one entry.
func (w *WikiClient) ImageInfos(ctx context.Context, titles []string) ([]ImageInfo, error) {
	key := cache.Key("wiki:imageinfo", titles...)
	if v, ok := w.cache.Get(key); ok {
		return v.([]ImageInfo), nil
	}

	params := url.Values{
		"action": {"query"},
		"titles": {strings.Join(titles, "|")},
		"prop":   {"imageinfo"},
		"iiprop": {"url|size"},
		"format": {"json"},
	}
	var body struct {
		Query struct {
			Pages map[string]struct {
				Title     string `json:"title"`
				ImageInfo []struct {
					URL    string `json:"url"`
					Width  int    `json:"width"`
					Height int    `json:"height"`
				} `json:"imageinfo"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := w.hc.GetJSON(ctx, w.api, params, &body); err != nil {
		return nil, fmt.Errorf("wiki imageinfo: %w", err)
	}

	infos := make([]ImageInfo, 0, len(body.Query.Pages))
	for _, page := range body.Query.Pages {
		if len(page.ImageInfo) == 0 {
			continue
		}
		ii := page.ImageInfo[0]
		infos = append(infos, ImageInfo{
			Title:  page.Title,
			URL:    ii.URL,
			Width:  ii.Width,
			Height: ii.Height,
		})
	}

	w.cache.Set(key, infos)
	return infos, nil
}
