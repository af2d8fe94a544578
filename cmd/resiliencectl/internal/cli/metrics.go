package cli

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/resilientgo/core/pkg/metrics"
)

var (
	metricsWindowSize int
	metricsSamples    int
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Exercise the sliding-window metrics engine",
}

var metricsDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Record synthetic samples into a count-bounded window and print the snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := metrics.NewCountWindow(metricsWindowSize)
		if err != nil {
			return err
		}

		outcomes := []metrics.Outcome{metrics.Success, metrics.Error, metrics.SlowSuccess, metrics.SlowError}
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < metricsSamples; i++ {
			d := time.Duration(rng.Intn(200)+1) * time.Millisecond
			o := outcomes[rng.Intn(len(outcomes))]
			w.Record(d, o)
		}

		s := w.Snapshot()
		printf("total=%d successful=%d failed=%d slow=%d slow_successful=%d slow_failed=%d\n",
			s.TotalCalls, s.SuccessfulCalls, s.FailedCalls, s.SlowCalls, s.SlowSuccessfulCalls, s.SlowFailedCalls)
		printf("failure_rate_pct=%.2f slow_call_rate_pct=%.2f average_duration=%s total_duration=%s\n",
			s.FailureRatePct, s.SlowCallRatePct, s.AverageDuration, s.TotalDuration)
		return nil
	},
}

func init() {
	metricsDemoCmd.Flags().IntVar(&metricsWindowSize, "window-size", 100, "count window size")
	metricsDemoCmd.Flags().IntVar(&metricsSamples, "samples", 1000, "number of synthetic samples to record")

	metricsCmd.AddCommand(metricsDemoCmd)
	rootCmd.AddCommand(metricsCmd)
}
