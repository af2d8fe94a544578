package cli

import (
	"context"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/resilientgo/core/pkg/schedule"
)

var (
	scheduleTicks  int
	schedulePeriod time.Duration
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Exercise the scheduled executor",
}

var scheduleDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a fixed-rate task for a few ticks, then shut the pool down",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := schedule.New(&schedule.Config{CorePoolSize: 2, NamePrefix: "resiliencectl-demo", Logger: logger})
		if err != nil {
			return err
		}

		done := make(chan struct{})
		var closeDone sync.Once
		var ticks int
		h, err := e.ScheduleAtFixedRate(cmd.Context(), 0, schedulePeriod, func(ctx context.Context) {
			ticks++
			printf("tick %d at %s\n", ticks, time.Now().Format(time.RFC3339Nano))
			if ticks >= scheduleTicks {
				closeDone.Do(func() { close(done) })
			}
		})
		if err != nil {
			return err
		}

		<-done
		h.Cancel()
		return e.Shutdown(context.Background())
	},
}

func init() {
	scheduleDemoCmd.Flags().IntVar(&scheduleTicks, "ticks", 5, "number of ticks to run before exiting")
	scheduleDemoCmd.Flags().DurationVar(&schedulePeriod, "period", 500*time.Millisecond, "tick period")

	scheduleCmd.AddCommand(scheduleDemoCmd)
	rootCmd.AddCommand(scheduleCmd)
}
