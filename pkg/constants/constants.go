// Package constants provides shared constants for the loan-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places kept when presenting money
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Amortization constants
const (
	// ScheduleClosingTolerance is the tolerance, relative to the principal,
	// used when deciding whether the current month clears the balance.
	ScheduleClosingTolerance = 1e-9

	// ScheduleSafetyFactor bounds a schedule at this many multiples of the
	// nominal term before it is reported as not amortizing.
	ScheduleSafetyFactor = 10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is loaded, when present, before environment overrides are read
	DefaultEnvFile = ".env"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRateLimitRequests is the number of requests a client may make per window
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow is the refill window for the rate limiter, in seconds
	DefaultRateLimitWindow = 60
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxTermYears is the longest loan term accepted at the API boundary
	MaxTermYears = 100

	// MaxAnnualRatePercent is the highest annual rate accepted at the API boundary
	MaxAnnualRatePercent = 100.0

	// MaxPrincipal is the largest principal accepted at the API boundary
	MaxPrincipal = 1e15
)
