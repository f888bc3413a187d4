// Package config defines the data structures related to configuration and
// includes functions for loading, merging and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/rental-analysis/internal/analysis"
	"github.com/iwvelando/rental-analysis/pkg/constants"
	"github.com/iwvelando/rental-analysis/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for rental-analysis.
type Configuration struct {
	Common    Common
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Rates     RatesConfig   `yaml:"rates,omitempty"`
	Cache     CacheConfig   `yaml:"cache,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
	// Expand prints every row of the yearly table instead of the collapsed view.
	Expand bool `yaml:"expand,omitempty"`
}

// Common holds the property and assumptions shared by all scenarios.
type Common struct {
	Property    analysis.PropertyData `yaml:"property"`
	Assumptions AssumptionOverrides   `yaml:"assumptions,omitempty"`
}

// Scenario is a named variation of the common property. Only the fields set
// in a scenario replace the common values.
type Scenario struct {
	Name        string              `yaml:"name"`
	Active      bool                `yaml:"active"`
	Property    PropertyOverrides   `yaml:"property,omitempty"`
	Assumptions AssumptionOverrides `yaml:"assumptions,omitempty"`
	// Optimize lists the break-even searches run against the resolved property.
	Optimize []OptimizerConfig `yaml:"optimize,omitempty"`
}

// RatesConfig controls the interest rate lookup.
type RatesConfig struct {
	Enabled   bool          `yaml:"enabled,omitempty"`
	ProxyURL  string        `yaml:"proxyURL,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	CacheTTL  time.Duration `yaml:"cacheTTL,omitempty"`
	Fallbacks RateFallbacks `yaml:"fallbacks,omitempty"`
}

// RateFallbacks are the rates used when the proxy cannot be reached. Zero
// values keep the built-in fallbacks.
type RateFallbacks struct {
	FifteenYear float64 `yaml:"fifteenYear,omitempty"`
	ThirtyYear  float64 `yaml:"thirtyYear,omitempty"`
}

// CacheConfig selects the key-value store backing the rate cache.
type CacheConfig struct {
	Backend   string `yaml:"backend,omitempty"` // memory, redis
	Address   string `yaml:"address,omitempty"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys can be overridden from the environment, e.g.
// RENTAL_OUTPUT_FORMAT=json.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here stops an analysis from running.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	names := make([]string, len(c.Scenarios))
	for i, scenario := range c.Scenarios {
		names[i] = scenario.Name
	}
	warnings = append(warnings, validation.ValidateScenarioNames(names)...)

	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "No active scenarios; only the common property will be analyzed")
	}

	for _, scenario := range c.ActiveScenarios() {
		property := scenario.Property.Apply(c.Common.Property)
		warnings = append(warnings, PropertyWarnings(fmt.Sprintf("Scenario '%s'", scenario.Name), property)...)
		for i := range scenario.Optimize {
			directive := scenario.Optimize[i]
			if err := directive.Validate(); err != nil {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' optimizer %d: %v", scenario.Name, i+1, err))
			}
		}
	}

	switch c.Cache.Backend {
	case "", constants.CacheBackendMemory:
	case constants.CacheBackendRedis:
		if c.Cache.Address == "" {
			warnings = append(warnings, "Cache backend redis has no address configured")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown cache backend '%s'", c.Cache.Backend))
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}

// PropertyWarnings reports inputs outside the ranges the analysis tool
// offers. Out-of-range inputs are still analyzed.
func PropertyWarnings(label string, p analysis.PropertyData) []string {
	warnings := validation.CheckBounds(label, []validation.Bound{
		{Field: "purchasePrice", Value: p.PurchasePrice, Min: 1, Max: 1e9},
		{Field: "downPayment", Value: p.DownPayment, Min: 0, Max: 50},
		{Field: "interestRate", Value: p.InterestRate, Min: 0, Max: 20},
		{Field: "monthlyRent", Value: p.MonthlyRent, Min: 0, Max: 1e7},
		{Field: "propertyTaxes", Value: p.PropertyTaxes, Min: 0, Max: 1e8},
		{Field: "insurance", Value: p.Insurance, Min: 0, Max: 1e8},
		{Field: "maintenance", Value: p.Maintenance, Min: 0, Max: 1e8},
		{Field: "vacancy", Value: p.Vacancy, Min: 0, Max: 20},
		{Field: "propertyManagement", Value: p.PropertyManagement, Min: 0, Max: 25},
		{Field: "closingCosts", Value: p.ClosingCosts, Min: 0, Max: 1e8},
		{Field: "rentAppreciation", Value: p.RentAppreciation, Min: 0, Max: 10},
		{Field: "propertyAppreciation", Value: p.PropertyAppreciation, Min: 0, Max: 15},
	})
	if w := validation.ValidateLoanTerm(label, p.LoanTerm); w != "" {
		warnings = append(warnings, w)
	}
	return warnings
}
