package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"json", "console"}
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %q",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateLogLevel checks a configured log level; empty selects the default.
func ValidateLogLevel(level string) error {
	return oneOf("log level", level, logLevels)
}

// ValidateLogFormat checks a configured log format; empty selects the default.
func ValidateLogFormat(format string) error {
	return oneOf("log format", format, logFormats)
}

func oneOf(label, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q, expected one of %s", label, value, strings.Join(allowed, ", "))
}
