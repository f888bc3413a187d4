// Package rates looks up the current average mortgage rate used to seed the
// interest rate of an analysis. Quotes come from a FRED proxy, are cached
// for a day, and fall back to fixed rates when the proxy is unavailable.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iwvelando/rental-analysis/internal/metrics"
	"github.com/iwvelando/rental-analysis/internal/store"
	"github.com/iwvelando/rental-analysis/internal/tracing"
	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/mathutil"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrNoRate is returned when the proxy answers without a usable rate.
var ErrNoRate = errors.New("no usable rate in response")

// Lookup sources reported in metrics and logs.
const (
	SourceCache    = "cache"
	SourceProxy    = "proxy"
	SourceFallback = "fallback"
)

// Quote is a rate observation for one series, as served by the proxy.
type Quote struct {
	Series    string  `json:"series"`
	Rate      float64 `json:"rate"`
	Date      string  `json:"date"`
	Timestamp string  `json:"timestamp"`
	Fallback  bool    `json:"fallback,omitempty"`
}

// Config controls the provider.
type Config struct {
	ProxyURL  string
	Timeout   time.Duration
	CacheTTL  time.Duration
	Fallbacks map[string]float64
}

// DefaultFallbacks returns the built-in fallback rates per series.
func DefaultFallbacks() map[string]float64 {
	return map[string]float64{
		constants.Series15Year: constants.Fallback15YearRate,
		constants.Series30Year: constants.Fallback30YearRate,
	}
}

// SeriesForTerm picks the FRED series that prices a loan of termYears.
func SeriesForTerm(termYears int) string {
	if termYears <= constants.ShortSeriesMaxTerm {
		return constants.Series15Year
	}
	return constants.Series30Year
}

// CacheKey is the store key of the cached quote for series.
func CacheKey(series string) string {
	return constants.RateCacheKeyPrefix + ":" + series
}

// Provider resolves current rates.
type Provider struct {
	logger *zap.Logger
	cache  store.Store
	client *http.Client
	cfg    Config
	now    func() time.Time
}

// NewProvider creates a provider. A nil cache disables caching.
func NewProvider(logger *zap.Logger, cache store.Store, cfg Config) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultRateTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.DefaultRateCacheTTL
	}
	if cfg.Fallbacks == nil {
		cfg.Fallbacks = DefaultFallbacks()
	}
	return &Provider{
		logger: logger,
		cache:  cache,
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		now:    time.Now,
	}
}

// WithHTTPClient replaces the HTTP client used for proxy requests.
func (p *Provider) WithHTTPClient(client *http.Client) *Provider {
	if client != nil {
		p.client = client
	}
	return p
}

// WithClock replaces the clock used to stamp fallback quotes.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	if now != nil {
		p.now = now
	}
	return p
}

// Current returns the rate for a loan of termYears. When neither the cache
// nor the proxy can answer, a fallback quote is returned and cached. The
// only error is a context that is already done.
func (p *Provider) Current(ctx context.Context, termYears int) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}
	series := SeriesForTerm(termYears)
	ctx, span := tracing.Tracer().Start(ctx, "rates.Current")
	defer span.End()
	span.SetAttributes(attribute.String("series", series), attribute.Int("term", termYears))

	if quote, ok := p.cached(ctx, series); ok {
		p.record(series, SourceCache, quote)
		span.SetAttributes(attribute.String("source", SourceCache))
		return quote, nil
	}

	quote, source := p.fetchOrFallback(ctx, series)
	// Fallbacks are cached only after a failed proxy request.
	if p.proxyConfigured() {
		p.store(ctx, series, quote)
	}
	p.record(series, source, quote)
	span.SetAttributes(attribute.String("source", source))
	return quote, nil
}

func (p *Provider) proxyConfigured() bool {
	return strings.TrimSpace(p.cfg.ProxyURL) != ""
}

func (p *Provider) fetchOrFallback(ctx context.Context, series string) (Quote, string) {
	if !p.proxyConfigured() {
		p.logger.Debug("no proxy URL configured, using fallback rate",
			zap.String("op", "rates.Current"),
			zap.String("series", series),
		)
		return p.fallback(series), SourceFallback
	}

	quote, err := p.Fetch(ctx, series)
	if err != nil {
		p.logger.Warn("unable to fetch rate from proxy, using fallback",
			zap.String("op", "rates.Current"),
			zap.String("series", series),
			zap.Error(err),
		)
		return p.fallback(series), SourceFallback
	}
	return quote, SourceProxy
}

// Fetch queries the proxy for series without consulting the cache.
func (p *Provider) Fetch(ctx context.Context, series string) (Quote, error) {
	endpoint, err := url.Parse(strings.TrimRight(p.cfg.ProxyURL, "/") + "/api/fred-proxy")
	if err != nil {
		return Quote{}, fmt.Errorf("invalid proxy URL %q: %w", p.cfg.ProxyURL, err)
	}
	query := endpoint.Query()
	query.Set("series", series)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build proxy request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("proxy request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("proxy error: %d", resp.StatusCode)
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return Quote{}, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if !mathutil.IsFinite(quote.Rate) || quote.Rate <= 0 {
		return Quote{}, ErrNoRate
	}
	if quote.Series == "" {
		quote.Series = series
	}
	quote.Rate = mathutil.Round(quote.Rate)
	return quote, nil
}

func (p *Provider) fallback(series string) Quote {
	rate, ok := p.cfg.Fallbacks[series]
	if !ok {
		rate = constants.FallbackDefaultRate
	}
	now := p.now().UTC()
	return Quote{
		Series:    series,
		Rate:      rate,
		Date:      now.Format("2006-01-02"),
		Timestamp: now.Format(time.RFC3339),
		Fallback:  true,
	}
}

func (p *Provider) cached(ctx context.Context, series string) (Quote, bool) {
	if p.cache == nil {
		return Quote{}, false
	}
	var quote Quote
	if err := store.GetJSON(ctx, p.cache, CacheKey(series), &quote); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn("failed to read cached rate",
				zap.String("op", "rates.cached"),
				zap.String("series", series),
				zap.Error(err),
			)
		}
		return Quote{}, false
	}
	quote.Rate = mathutil.Round(quote.Rate)
	return quote, true
}

func (p *Provider) store(ctx context.Context, series string, quote Quote) {
	if p.cache == nil {
		return
	}
	if err := store.SetJSON(ctx, p.cache, CacheKey(series), quote, p.cfg.CacheTTL); err != nil {
		p.logger.Warn("failed to cache rate",
			zap.String("op", "rates.store"),
			zap.String("series", series),
			zap.Error(err),
		)
	}
}

func (p *Provider) record(series, source string, quote Quote) {
	metrics.RateLookups.WithLabelValues(series, source).Inc()
	p.logger.Debug("resolved interest rate",
		zap.String("op", "rates.Current"),
		zap.String("series", series),
		zap.String("source", source),
		zap.Float64("rate", quote.Rate),
		zap.Bool("fallback", quote.Fallback),
	)
}
