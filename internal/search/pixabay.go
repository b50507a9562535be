package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"slidecraft/internal/cache"
)

// DefaultImageAPI is the stock-image search endpoint used unless overridden.
const DefaultImageAPI = "https://pixabay.com/api/"

// ErrNoAPIKey is returned when the image-search provider is not configured.
var ErrNoAPIKey = errors.New("image search api key not configured")

// Image is one stock-image hit.
type Image struct {
	ID         int    `json:"id"`
	PageURL    string `json:"pageURL"`
	PreviewURL string `json:"previewURL"`
	WebURL     string `json:"webformatURL"`
	LargeURL   string `json:"largeImageURL"`
	Tags       string `json:"tags"`
	User       string `json:"user"`
}

// ImagePage is one page of stock-image results.
type ImagePage struct {
	Total     int     `json:"total"`
	TotalHits int     `json:"totalHits"`
	Hits      []Image `json:"hits"`
}

// ImageClient queries a Pixabay-style stock-image API through the retrying
// fetcher, memoizing pages in the shared response cache.
type ImageClient struct {
	api    string
	apiKey string
	hc     Getter
	cache  *cache.Cache
}

// NewImageClient creates an ImageClient. An empty api uses DefaultImageAPI.
func NewImageClient(api, apiKey string, hc Getter, c *cache.Cache) *ImageClient {
	if api == "" {
		api = DefaultImageAPI
	}
	return &ImageClient{api: api, apiKey: apiKey, hc: hc, cache: c}
}

// SearchImages returns one page of image hits for the query.
func (p *ImageClient) SearchImages(ctx context.Context, query string, page, perPage int, lang string) (*ImagePage, error) {
	if p.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	key := cache.Key(fmt.Sprintf("images:%s:%d:%d", lang, page, perPage), query)
	if v, ok := p.cache.Get(key); ok {
		return v.(*ImagePage), nil
	}

	params := url.Values{
		"key":        {p.apiKey},
		"q":          {query},
		"page":       {strconv.Itoa(page)},
		"per_page":   {strconv.Itoa(perPage)},
		"lang":       {lang},
		"image_type": {"photo"},
		"safesearch": {"true"},
	}
	var body ImagePage
	if err := p.hc.GetJSON(ctx, p.api, params, &body); err != nil {
		return nil, fmt.Errorf("image search: %w", err)
	}

	p.cache.Set(key, &body)
	return &body, nil
}
