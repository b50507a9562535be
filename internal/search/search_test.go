package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"slidecraft/internal/cache"
)

// fakeGetter serves a canned JSON body and records calls.
type fakeGetter struct {
	body   string
	err    error
	calls  int
	params url.Values
}

func (f *fakeGetter) GetJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	f.calls++
	f.params = params
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.body), v)
}

func TestSearchTitles(t *testing.T) {
	hc := &fakeGetter{body: `{"query":{"search":[
		{"title":"Go (programming language)","pageid":12,"snippet":"..."},
		{"title":"Go","pageid":34,"snippet":"..."}
	]}}`}
	w := NewWikiClient("", hc, cache.New())

	titles, err := w.SearchTitles(context.Background(), "go", 10)
	if err != nil {
		t.Fatalf("SearchTitles: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("len(titles) = %d, want 2", len(titles))
	}
	if titles[0].Title != "Go (programming language)" || titles[0].PageID != 12 {
		t.Errorf("titles[0] = %+v", titles[0])
	}
	if got := hc.params.Get("srsearch"); got != "go" {
		t.Errorf("srsearch = %q, want %q", got, "go")
	}

	// Second identical query is served from cache.
	if _, err := w.SearchTitles(context.Background(), "go", 10); err != nil {
		t.Fatalf("SearchTitles: %v", err)
	}
	if hc.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", hc.calls)
	}
}

func TestImageInfos_CacheKeyOrderIndependent(t *testing.T) {
	hc := &fakeGetter{body: `{"query":{"pages":{
		"1":{"title":"File:A.jpg","imageinfo":[{"url":"http://img/a.jpg","width":100,"height":50}]},
		"2":{"title":"File:B.jpg","imageinfo":[]}
	}}}`}
	w := NewWikiClient("", hc, cache.New())

	infos, err := w.ImageInfos(context.Background(), []string{"File:B.jpg", "File:A.jpg"})
	if err != nil {
		t.Fatalf("ImageInfos: %v", err)
	}
	if len(infos) != 1 || infos[0].URL != "http://img/a.jpg" {
		t.Errorf("infos = %+v", infos)
	}

	// Same titles in the opposite order hit the cached entry.
	if _, err := w.ImageInfos(context.Background(), []string{"File:A.jpg", "File:B.jpg"}); err != nil {
		t.Fatalf("ImageInfos: %v", err)
	}
	if hc.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", hc.calls)
	}
}

func TestSearchImages(t *testing.T) {
	hc := &fakeGetter{body: `{"total":2,"totalHits":2,"hits":[
		{"id":1,"pageURL":"p1","previewURL":"pr1","tags":"cat"},
		{"id":2,"pageURL":"p2","previewURL":"pr2","tags":"cat, cute"}
	]}`}
	p := NewImageClient("", "key123", hc, cache.New())

	page, err := p.SearchImages(context.Background(), "cats", 1, 20, "en")
	if err != nil {
		t.Fatalf("SearchImages: %v", err)
	}
	if page.TotalHits != 2 || len(page.Hits) != 2 {
		t.Errorf("page = %+v", page)
	}
	for k, want := range map[string]string{
		"key": "key123", "q": "cats", "page": "1", "per_page": "20", "lang": "en",
	} {
		if got := hc.params.Get(k); got != want {
			t.Errorf("param %s = %q, want %q", k, got, want)
		}
	}

	if _, err := p.SearchImages(context.Background(), "cats", 1, 20, "en"); err != nil {
		t.Fatalf("SearchImages: %v", err)
	}
	if hc.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", hc.calls)
	}

	// A different page is a distinct cache entry.
	if _, err := p.SearchImages(context.Background(), "cats", 2, 20, "en"); err != nil {
		t.Fatalf("SearchImages: %v", err)
	}
	if hc.calls != 2 {
		t.Errorf("upstream calls = %d, want 2", hc.calls)
	}
}

func TestSearchImages_NoAPIKey(t *testing.T) {
	p := NewImageClient("", "", &fakeGetter{}, cache.New())
	_, err := p.SearchImages(context.Background(), "cats", 1, 20, "en")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("error = %v, want ErrNoAPIKey", err)
	}
}

func TestSearchTitles_UpstreamError(t *testing.T) {
	hc := &fakeGetter{err: errors.New("boom")}
	w := NewWikiClient("", hc, cache.New())
	if _, err := w.SearchTitles(context.Background(), "go", 10); err == nil {
		t.Error("SearchTitles: expected error")
	}
}
