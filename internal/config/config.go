// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/calculators"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LOANCALC_LOGGING_LEVEL.
const EnvPrefix = "LOANCALC"

// Configuration holds all configuration for loan-calculator.
type Configuration struct {
	Logging LoggingConfig            `yaml:"logging,omitempty"`
	Output  OutputConfig             `yaml:"output,omitempty"`
	Loans   []Loan                   `yaml:"loans,omitempty"`
	Tax     *calculators.TaxSchedule `yaml:"tax,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadEnvFile loads variables from a dotenv file without overriding the
// existing environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading env file %s: %w", path, err)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register the scalar keys so environment overrides apply even when the
	// file omits them.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// TaxSchedule returns the configured tax schedule, or the default schedule
// when no slabs are configured.
func (conf *Configuration) TaxSchedule() calculators.TaxSchedule {
	if conf == nil || conf.Tax == nil || len(conf.Tax.Slabs) == 0 {
		return calculators.DefaultTaxSchedule()
	}
	return *conf.Tax
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	configured := make([]validation.LoanConfig, 0, len(conf.Loans))
	for _, loan := range conf.Loans {
		configured = append(configured, validation.LoanConfig{Name: loan.Name, Terms: loan.Terms()})
	}

	warnings := validation.ValidateLoans(configured)

	if conf.Tax != nil && len(conf.Tax.Slabs) > 0 {
		if err := conf.Tax.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("Tax schedule is invalid, tax calculations will fail: %v", err))
		}
	}
	return warnings
}
