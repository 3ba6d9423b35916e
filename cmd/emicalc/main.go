package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Dan9191/emi-service/internal/calculator"
	"github.com/Dan9191/emi-service/internal/config"
	"github.com/Dan9191/emi-service/internal/models"
	"github.com/Dan9191/emi-service/internal/report"
)

type options struct {
	input       models.CalculationInput
	lendersFile string
	asJSON      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "emicalc",
		Short: "Compute a home loan EMI, schedule, eligibility and lender comparison",
		Long: `Prices a home loan from the property price and down payment.
Amounts accept separators and currency symbols, e.g. "25,00,000" or "₹5000000".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input.PropertyPrice, "price", "", "property price")
	f.StringVar(&opts.input.DownPayment, "down", "0", "down payment")
	f.StringVar(&opts.input.AnnualRate, "rate", "", "annual interest rate in percent (default 8.5)")
	f.StringVar(&opts.input.TenureYears, "tenure", "", "tenure in years, 1 to 30 (default 20)")
	f.StringVar(&opts.input.InterestMethod, "method", string(models.MethodReducing), "interest method: reducing or flat")
	f.StringVar(&opts.input.MonthlyIncome, "income", "", "monthly income, enables the eligibility check")
	f.StringVar(&opts.input.ExistingObligations, "obligations", "", "existing monthly obligations")
	f.StringVar(&opts.input.PrepaymentAmount, "prepayment", "", "one-time prepayment amount")
	f.StringVar(&opts.lendersFile, "lenders", "", "YAML file with the lender rate table")
	f.BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	lenders, err := config.LoadLenderRates(opts.lendersFile)
	if err != nil {
		return err
	}

	calc, err := calculator.Compute(calculator.ParseRequest(opts.input), lenders)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(calc)
	}
	_, err = fmt.Fprint(out, report.Summary(calc, time.Now()))
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
