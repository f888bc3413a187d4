// Package constants provides shared constants for the rental-analysis application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Model inflation assumptions applied to fixed annual costs. These are not
// user inputs; they may be overridden through the assumptions config block.
const (
	// DefaultTaxInflation is the assumed annual property tax increase, in percent.
	DefaultTaxInflation = 2.0

	// DefaultInsuranceInflation is the assumed annual insurance increase, in percent.
	DefaultInsuranceInflation = 3.0

	// DefaultMaintenanceInflation is the assumed annual maintenance increase, in percent.
	DefaultMaintenanceInflation = 3.0
)

// Projection window constants
const (
	// DefaultExtraYears is how many years past the loan term are projected.
	DefaultExtraYears = 5

	// DefaultMaxTableYears caps the number of rows in the yearly table.
	DefaultMaxTableYears = 30

	// CollapsedEdgeRows is the number of rows kept at each end of a collapsed table.
	CollapsedEdgeRows = 2

	// CollapseThreshold is the row count above which a table is collapsed.
	CollapseThreshold = 5
)

// MaxLoanTerm is the longest loan term, in years, accepted for analysis.
const MaxLoanTerm = 100

// SupportedLoanTerms lists the conventional loan terms in years.
var SupportedLoanTerms = []int{5, 10, 15, 20, 25, 30, 40}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides for configuration keys.
	EnvPrefix = "RENTAL"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimitRequests is the number of requests allowed per window per client.
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow is the refill window of the per-client rate limiter.
	DefaultRateLimitWindow = time.Minute

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Interest rate lookup constants
const (
	// Series15Year is the FRED series for the 15-year fixed mortgage average.
	Series15Year = "MORTGAGE15US"

	// Series30Year is the FRED series for the 30-year fixed mortgage average.
	Series30Year = "MORTGAGE30US"

	// ShortSeriesMaxTerm is the longest term, in years, priced off the 15-year series.
	ShortSeriesMaxTerm = 20

	// Fallback15YearRate is used when the 15-year series cannot be fetched.
	Fallback15YearRate = 6.8

	// Fallback30YearRate is used when the 30-year series cannot be fetched.
	Fallback30YearRate = 7.2

	// FallbackDefaultRate is used when no series-specific fallback exists.
	FallbackDefaultRate = 7.0

	// RateCacheKeyPrefix namespaces cached rate quotes.
	RateCacheKeyPrefix = "fred-rate-cache"

	// DefaultRateTimeout bounds a single proxy request.
	DefaultRateTimeout = 5 * time.Second

	// DefaultRateCacheTTL is how long a fetched quote stays valid.
	DefaultRateCacheTTL = 24 * time.Hour
)

// Cache backends
const (
	// CacheBackendMemory keeps entries in process memory.
	CacheBackendMemory = "memory"

	// CacheBackendRedis stores entries in Redis.
	CacheBackendRedis = "redis"
)
