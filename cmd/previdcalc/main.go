package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/previdcalc/previdcalc/internal/calculation"
	"github.com/previdcalc/previdcalc/internal/config"
	"github.com/previdcalc/previdcalc/internal/output"
	"github.com/previdcalc/previdcalc/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "previdcalc",
	Short: "Social security retirement calculator",
	Long: "Computes retirement eligibility and initial benefit value (RMI) from a " +
		"worker's contribution history. Results are illustrative approximations, " +
		"not legal advice.",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "previdcalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func calculateCmd() *cobra.Command {
	var (
		format   string
		asOfFlag string
	)
	cmd := &cobra.Command{
		Use:   "calculate [case-file]",
		Short: "Run a full calculation from a YAML case file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf := time.Now()
			if asOfFlag != "" {
				parsed, err := time.Parse("2006-01-02", asOfFlag)
				if err != nil {
					return fmt.Errorf("--as-of must be YYYY-MM-DD: %w", err)
				}
				asOf = parsed
			}

			caseFile, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			tables, err := caseFile.Tables()
			if err != nil {
				return err
			}

			engine, err := calculation.NewEngine(tables, asOf)
			if err != nil {
				return err
			}
			for i, c := range caseFile.Contributions {
				if err := engine.AddContribution(c); err != nil {
					return fmt.Errorf("contribution %d (%s): %w", i, c.Competency, err)
				}
			}
			for i, p := range caseFile.SpecialPeriods {
				if err := engine.AddSpecialPeriod(p); err != nil {
					return fmt.Errorf("special period %d: %w", i, err)
				}
			}

			summary, err := engine.Evaluate(caseFile.Insured)
			if err != nil {
				return err
			}

			formatter, err := output.ByName(format)
			if err != nil {
				return err
			}
			rendered, err := formatter.Format(summary)
			if err != nil {
				return fmt.Errorf("rendering %s output: %w", formatter.Name(), err)
			}
			_, err = os.Stdout.Write(rendered)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: console, csv or json")
	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "Calculation date (YYYY-MM-DD), defaults to today")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(os.Stderr).With().Timestamp().Logger()
			return server.New(log).ListenAndServe(fmt.Sprintf(":%d", port))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Listen port")
	return cmd
}

func main() {
	rootCmd.AddCommand(calculateCmd(), serveCmd(), versionCmd())
	if err := rootCmd.Execute(); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Error().Err(err).Msg("previdcalc failed")
		os.Exit(1)
	}
}
