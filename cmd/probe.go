// Copyright © 2019 Andrei Gubarev <agubarev@protonmail.com>

package cmd

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/agubarev/groupsync/internal/core"
	"github.com/agubarev/groupsync/pkg/platform"
	"github.com/agubarev/groupsync/pkg/util"
)

var (
	probeCount     int
	probeThreshold time.Duration
)

// probeCmd represents the probe command: a smoke test measuring the
// latency of platform store calls against a threshold
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Measure platform store call latency against a threshold.",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := util.DefaultLogger(viper.GetBool("debug"), viper.GetString("logdir"))
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		defer logger.Sync()

		c, err := core.New(coreConfig())
		if err != nil {
			logger.Error("failed to initialize", zap.Error(err))
			return err
		}
		defer c.Close()

		store, err := c.PlatformStore()
		if err != nil {
			return err
		}

		if probeCount < 1 {
			return errors.New("probe count must be at least 1")
		}

		ctx := context.Background()

		var total, min, max time.Duration

		for i := 0; i < probeCount; i++ {
			started := time.Now()

			if _, err := store.GroupMembers(ctx, platform.PublicGroup); err != nil {
				return errors.Wrap(err, "probe call failed")
			}

			elapsed := time.Since(started)
			total += elapsed

			if min == 0 || elapsed < min {
				min = elapsed
			}

			if elapsed > max {
				max = elapsed
			}
		}

		mean := total / time.Duration(probeCount)

		logger.Info("probe complete",
			zap.Int("calls", probeCount),
			zap.Duration("min", min),
			zap.Duration("mean", mean),
			zap.Duration("max", max),
			zap.Duration("threshold", probeThreshold),
		)

		if mean > probeThreshold {
			return errors.Errorf("mean latency %s exceeds threshold %s", mean, probeThreshold)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().IntVar(&probeCount, "count", 5, "number of probe calls to perform")
	probeCmd.Flags().DurationVar(&probeThreshold, "threshold", time.Second, "fail if mean latency exceeds this")
}
