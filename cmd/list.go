package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dartest.dev/pkg/dartest/internal/domain"
)

var listParallelFlag int

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List classes and companion test status",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				Paths:    parsePaths(args),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Parallel: viper.GetInt(scanParallelConfigKey),
			})
		},
	}

	configureListFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func configureListFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&listParallelFlag, scanParallelFlagName, "p", defaultScanParallel, "number of parallel workers for the presence scan")
	bindFlagToConfig(cmd.Flags().Lookup(scanParallelFlagName), scanParallelConfigKey)
}
