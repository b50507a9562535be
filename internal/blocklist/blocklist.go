// Package blocklist maintains in-memory sets of known-bad domains, refreshed
// from upstream feeds at most once per TTL window.
package blocklist

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a successful refresh stays valid. All sources share
// one expiry and are refreshed together.
const DefaultTTL = 24 * time.Hour

// Source is one upstream blocklist feed.
type Source struct {
	Name string
	URL  string
}

// DefaultSources returns the feeds consulted by the URL-safety checker.
func DefaultSources() []Source {
	return []Source{
		{Name: "phishing", URL: "https://openphish.com/feed.txt"},
		{Name: "urlhaus", URL: "https://urlhaus.abuse.ch/downloads/hostfile/"},
	}
}

// Reason classifies a Check outcome.
type Reason string

const (
	// ReasonMatched means the URL's host matched a blocklisted domain.
	ReasonMatched Reason = "matched"
	// ReasonClean means no blocklisted domain matched.
	ReasonClean Reason = "clean"
	// ReasonInvalid means the URL had no parseable host. This is an expected
	// outcome, not an error, and no network call is made.
	ReasonInvalid Reason = "invalid_url"
)

// Result is the outcome of a URL-safety check.
type Result struct {
	Blocked bool   `json:"blocked"`
	Reason  Reason `json:"reason"`
	Domain  string `json:"matched_domain,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Downloader fetches a blocklist feed as text. Satisfied by *fetch.Client.
type Downloader interface {
	GetText(ctx context.Context, rawURL string) (string, error)
}

// Checker caches one domain-set per source and answers lookups without
// touching the network except during refresh. Refresh is single-flight:
// concurrent callers share one in-flight refresh and readers otherwise use
// the previous snapshot.
type Checker struct {
	sources []Source
	dl      Downloader
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	sets    map[string]map[string]struct{}
	loaded  bool
	expires time.Time
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithTTL overrides the refresh TTL.
func WithTTL(ttl time.Duration) CheckerOption {
	return func(c *Checker) { c.ttl = ttl }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) CheckerOption {
	return func(c *Checker) { c.now = now }
}

// NewChecker creates a Checker over the given sources. Nothing is downloaded
// until EnsureLoaded or the first Check.
func NewChecker(sources []Source, dl Downloader, opts ...CheckerOption) *Checker {
	c := &Checker{
		sources: sources,
		dl:      dl,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  log.With().Str("component", "blocklist").Logger(),
		sets:    make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check extracts the hostname from rawURL and tests it against every cached
// domain in every source. An unparseable URL yields a ReasonInvalid result
// without any network activity.
func (c *Checker) Check(ctx context.Context, rawURL string) Result {
	host := hostOf(rawURL)
	if host == "" {
		return Result{Reason: ReasonInvalid}
	}

	if err := c.EnsureLoaded(ctx, false); err != nil {
		// Degrade to whatever snapshot we have rather than failing the check.
		c.logger.Warn().Err(err).Msg("blocklist refresh failed")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, set := range c.sets {
		for blocked := range set {
			if domainMatches(blocked, host) {
				return Result{Blocked: true, Reason: ReasonMatched, Domain: blocked, Source: name}
			}
		}
	}
	return Result{Reason: ReasonClean}
}

// EnsureLoaded refreshes the cached sets when they are missing or expired,
// or unconditionally when force is set. Only one refresh runs at a time;
// concurrent callers wait for its result.
func (c *Checker) EnsureLoaded(ctx context.Context, force bool) error {
	if !force && c.fresh() {
		return nil
	}
	_, err, _ := c.group.Do("refresh", func() (any, error) {
		// A caller that waited behind an in-flight refresh is satisfied by
		// that refresh; only a forced caller goes again.
		if !force && c.fresh() {
			return nil, nil
		}
		return nil, c.refresh(ctx)
	})
	return err
}

// Domains returns the number of cached domains for a source.
func (c *Checker) Domains(source string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets[source])
}

func (c *Checker) fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded && c.now().Before(c.expires)
}

// refresh downloads all sources concurrently and swaps in the non-empty
// results wholesale. A source that fails keeps its previous set; the shared
// expiry advances regardless so a flapping feed is not hammered.
func (c *Checker) refresh(ctx context.Context) error {
	refreshTotal.Inc()

	fetched := make([]map[string]struct{}, len(c.sources))
	errs := make([]error, len(c.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range c.sources {
		i, src := i, src
		g.Go(func() error {
			text, err := c.dl.GetText(gctx, src.URL)
			if err != nil {
				// Recorded, not returned: one failing feed must not cancel
				// the others.
				errs[i] = fmt.Errorf("download %s: %w", src.Name, err)
				return nil
			}
			fetched[i] = ParseDomains(text)
			return nil
		})
	}
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	var failed []error
	for i, src := range c.sources {
		if len(fetched[i]) > 0 {
			c.sets[src.Name] = fetched[i]
			domainsGauge.WithLabelValues(src.Name).Set(float64(len(fetched[i])))
			c.logger.Info().
				Str("source", src.Name).
				Int("domains", len(fetched[i])).
				Msg("blocklist source refreshed")
			continue
		}
		sourceFailures.WithLabelValues(src.Name).Inc()
		err := errs[i]
		if err == nil {
			err = fmt.Errorf("source %s returned no domains", src.Name)
		}
		failed = append(failed, err)
		c.logger.Warn().Err(err).
			Str("source", src.Name).
			Int("kept_domains", len(c.sets[src.Name])).
			Msg("blocklist source kept from previous snapshot")
	}

	c.loaded = len(c.sets) > 0
	c.expires = c.now().Add(c.ttl)

	if !c.loaded {
		return fmt.Errorf("all blocklist sources failed: %w", errors.Join(failed...))
	}
	return nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
}
