package main

import (
	"fmt"
	"io"
	"log"

	"github.com/costlens/backend/config"
	"github.com/costlens/backend/internal/catalog"
	"github.com/costlens/backend/internal/display"
	"github.com/costlens/backend/internal/domain"
	"github.com/costlens/backend/internal/infrastructure/numbeo"
	"github.com/costlens/backend/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagCity          string
	flagCountry       string
	flagConfig        string
	flagJSON          bool
	flagShowUnmatched bool
	flagVerbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "costcli",
	Short: "Look up cost of living prices for a city",
	Long: "CLI tool that fetches a city's cost of living page and maps every price row\n" +
		"onto the fixed catalog of categories and items.",
	Example: `  costcli --city Imphal --country India
  costcli --city Lucknow --json
  costcli --city Berlin --country Germany --show-unmatched
  costcli catalog`,
	Args: cobra.ArbitraryArgs,
	RunE: runLookup,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the categories and items prices are matched against",
	RunE:  runCatalog,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a config file (default: ./config.yaml if present)")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log fetch and match details to stderr")

	f := rootCmd.Flags()
	f.StringVarP(&flagCity, "city", "c", "", "City to look up (default from config)")
	f.StringVar(&flagCountry, "country", "", "Country of the city (default from config)")
	f.BoolVar(&flagShowUnmatched, "show-unmatched", false, "List labels that matched no catalog item")

	rootCmd.AddCommand(catalogCmd)
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	resetCLIState()

	setCommandIO(rootCmd, stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		cliErr := classifyCLIError(err)
		display.PrintError(stderr, fmt.Sprintf("error: %s", cliErr.Message))
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}

func resetCLIState() {
	flagCity = ""
	flagCountry = ""
	flagConfig = ""
	flagJSON = false
	flagShowUnmatched = false
	flagVerbose = false
	resetFlags(rootCmd)
}

// resetFlags restores every flag, including cobra's help flag, to its default
// so a previous run does not leak into the next one
func resetFlags(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// loadConfig reads configuration and routes the standard logger to stderr,
// silencing it unless --verbose is set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	log.SetFlags(0)
	if flagVerbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, invalidArgsError("%v", err)
	}
	return cfg, nil
}

// newLookupService wires a one-shot lookup service. Pages are not cached
// between invocations.
func newLookupService(cfg *config.Config) (*usecase.CostOfLivingService, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	client := numbeo.NewClient(numbeo.ClientConfig{
		UserAgent:         cfg.Source.UserAgent,
		Timeout:           cfg.Source.Timeout,
		RequestsPerSecond: cfg.Source.RequestsPerSecond,
		Burst:             cfg.Source.Burst,
		MaxAttempts:       cfg.Source.MaxAttempts,
	})
	client.SetDebug(flagVerbose)

	matcher := usecase.NewMatchingService(usecase.BuildIndex(cat), usecase.MatchConfig{
		EnableDebugLogging: cfg.Matching.EnableDebugLogging || flagVerbose,
	})

	return usecase.NewCostOfLivingService(
		nil,
		client,
		numbeo.NewTableParser(cfg.Source.TableClass),
		numbeo.NewURLBuilder(cfg.Source.BaseURL, cfg.Source.CitySlugs, cfg.Source.CountrySuffixedCities),
		matcher,
		usecase.CostOfLivingServiceConfig{
			DefaultCity:    cfg.Lookup.DefaultCity,
			DefaultCountry: cfg.Lookup.DefaultCountry,
		},
	), nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return invalidArgsError("unexpected argument %q (use --city and --country)", args[0])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	service, err := newLookupService(cfg)
	if err != nil {
		return err
	}

	report, err := service.Lookup(cmd.Context(), domain.LookupRequest{
		City:    flagCity,
		Country: flagCountry,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return display.PrintReportJSON(cmd.OutOrStdout(), report)
	}
	display.PrintReport(cmd.OutOrStdout(), report, flagShowUnmatched)
	if report.Stats.Unmatched > 0 && !flagShowUnmatched {
		display.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf(
			"%d labels matched no catalog item (list them with --show-unmatched)", report.Stats.Unmatched))
	}
	return nil
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	if flagJSON {
		return display.PrintCatalogJSON(cmd.OutOrStdout(), cat)
	}
	display.PrintCatalog(cmd.OutOrStdout(), cat)
	return nil
}
