// Package cmd provides the root command and CLI setup for dartest.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dartest.dev/pkg/dartest/internal/adapter"
	"dartest.dev/pkg/dartest/internal/controller"
	"dartest.dev/pkg/dartest/internal/domain"
	m "dartest.dev/pkg/dartest/internal/model"
)

var fsAdapter adapter.ProjectFSAdapter
var pubspecReader adapter.PubspecReader
var deriver *domain.Deriver
var presenceCache *domain.PresenceCache
var scaffolder domain.Scaffolder
var workflow domain.Workflow
var ui controller.UI

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalProjectFSAdapter()
	pubspecReader = adapter.NewLocalPubspecReader(fsAdapter)
	deriver = domain.NewDeriver(viper.GetString(libDirConfigKey), viper.GetString(testDirConfigKey))
	presenceCache = domain.NewPresenceCache()
	scaffolder = domain.NewScaffolder(fsAdapter, pubspecReader, deriver, presenceCache)
	workflow = domain.NewWorkflow(fsAdapter, pubspecReader, deriver, presenceCache, ui)
}

const rootLongDescription = `Dartest scans a Dart project for class declarations, shows which source
files already have a companion test, and scaffolds missing test files with
the correct import line.

Sources under lib/ get their tests in a mirrored tree under test/; sources
elsewhere get a sibling _test file. Existing test files are never touched.`

const listLongDescription = `List class declarations and whether each source file has a companion test.

Scans the project's lib/ directory by default; pass paths to scan elsewhere.`

const genLongDescription = `Generate a companion test file for a Dart source file.

The test is placed under test/ mirroring the source's location under lib/
(or next to the source outside lib/), importing the source through the
package: URI when pubspec.yaml declares a package name. If the test file
already exists it is left untouched and its path is printed instead.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dartest",
		Short: "Dart test scaffolding tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
