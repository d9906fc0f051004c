package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/logging"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"go.uber.org/zap"
)

const flagLoanName = "command-line"

type options struct {
	configPath   string
	envFile      string
	outputFormat string
	logLevel     string
	loan         config.Loan
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := flag.NewFlagSet("loan-calculator", flag.ContinueOnError)
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "optional dotenv file loaded before configuration")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.Float64Var(&opts.loan.Principal, "principal", 0, "loan principal; when set, only this loan is calculated")
	flags.Float64Var(&opts.loan.AnnualRatePercent, "rate", 0, "annual interest rate in percent")
	flags.Float64Var(&opts.loan.TermYears, "years", 0, "loan term in years")
	flags.Float64Var(&opts.loan.ExtraMonthlyPayment, "extra", 0, "extra principal paid every month")
	flags.IntVar(&opts.loan.TargetPayoffMonths, "target-months", 0, "report the smallest extra payment that pays the loan off within this many months")
	if err := flags.Parse(args); err != nil {
		return options{}, err
	}
	opts.loan.Name = flagLoanName
	return opts, nil
}

// loadConfiguration reads the configuration file. The file is optional when
// the loan comes from flags.
func loadConfiguration(opts options) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err == nil {
		return conf, nil
	}
	if opts.loan.Principal != 0 {
		if _, statErr := os.Stat(opts.configPath); errors.Is(statErr, fs.ErrNotExist) {
			return &config.Configuration{}, nil
		}
	}
	return nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}

	conf, err := loadConfiguration(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	if opts.loan.Principal != 0 {
		if err := validation.ValidateLoanTerms(opts.loan.Terms()); err != nil {
			return err
		}
		conf.Loans = []config.Loan{opts.loan}
	} else {
		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main.run"),
			)
		}
	}

	results, err := conf.ProcessLoans(logger)
	if err != nil {
		return fmt.Errorf("failed to process loan amortization schedules: %w", err)
	}

	// CSV carries schedule rows only, so payoff targets are not searched
	if outputFormat == constants.OutputFormatCSV {
		return output.CsvFormat(stdout, results)
	}

	optimizations, err := conf.OptimizeLoans(logger)
	if err != nil {
		return fmt.Errorf("failed to optimize loan payoff targets: %w", err)
	}

	output.PrettyFormat(stdout, results)
	for _, summary := range optimizations {
		_, _ = fmt.Fprintln(stdout, output.OptimizationLine(summary))
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger, _ := zap.NewProduction()
		logger.Fatal("loan-calculator failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
