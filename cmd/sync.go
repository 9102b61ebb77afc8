// Copyright © 2019 Andrei Gubarev <agubarev@protonmail.com>

package cmd

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/agubarev/groupsync/internal/core"
	"github.com/agubarev/groupsync/pkg/membership"
	"github.com/agubarev/groupsync/pkg/util"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	syncDryRun   bool
	syncProjects []string
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full access group synchronization pass.",
	Long: `Builds a snapshot of directory group membership and of the platform's
public accounts, then reconciles every managed project's access groups
against the policy held in the study registry. Re-running with unchanged
inputs produces zero changes.`,
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

		if err := c.SetLogger(logger); err != nil {
			return err
		}

		syncer, err := c.Syncer()
		if err != nil {
			return err
		}

		summary, err := syncer.Run(context.Background(), membership.Options{
			DryRun:     syncDryRun,
			ProjectIDs: syncProjects,
		})

		if err != nil {
			logger.Error("synchronization failed", zap.Error(err))
			return err
		}

		payload, err := json.Marshal(summary)
		if err != nil {
			return errors.Wrap(err, "failed to marshal run summary")
		}

		fmt.Print(string(pretty.Pretty(payload)))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report intended changes without applying them")
	syncCmd.Flags().StringSliceVar(&syncProjects, "project", nil, "restrict the run to these project ids (repeatable)")
}
