package cli

import (
	"github.com/spf13/cobra"

	"github.com/resilientgo/core/pkg/interval"
)

var (
	intervalFamily   string
	intervalMs       int64
	intervalMult     float64
	intervalCapMs    int64
	intervalAttempts int64
)

var intervalCmd = &cobra.Command{
	Use:   "interval",
	Short: "Inspect retry-interval functions",
}

var intervalTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print attempt -> delay for a backoff family",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f interval.Func
		var err error

		switch intervalFamily {
		case "fixed":
			f, err = interval.Fixed(intervalMs)
		case "exponential":
			f, err = interval.Exponential(intervalMs, intervalMult)
		case "exponential-capped":
			f, err = interval.ExponentialCapped(intervalMs, intervalMult, intervalCapMs)
		default:
			f, err = interval.ExponentialCapped(intervalMs, intervalMult, intervalCapMs)
		}
		if err != nil {
			return err
		}

		printf("attempt\tdelay_ms\n")
		for attempt := int64(1); attempt <= intervalAttempts; attempt++ {
			d, err := f(attempt)
			if err != nil {
				return err
			}
			printf("%d\t%d\n", attempt, d)
		}
		return nil
	},
}

func init() {
	intervalTableCmd.Flags().StringVar(&intervalFamily, "family", "exponential-capped", "fixed|exponential|exponential-capped")
	intervalTableCmd.Flags().Int64Var(&intervalMs, "interval", interval.DefaultIntervalMs, "base interval in ms")
	intervalTableCmd.Flags().Float64Var(&intervalMult, "multiplier", interval.DefaultMultiplier, "backoff multiplier")
	intervalTableCmd.Flags().Int64Var(&intervalCapMs, "cap", 10000, "cap in ms (exponential-capped only)")
	intervalTableCmd.Flags().Int64Var(&intervalAttempts, "attempts", 7, "number of attempts to print")

	intervalCmd.AddCommand(intervalTableCmd)
	rootCmd.AddCommand(intervalCmd)
}
