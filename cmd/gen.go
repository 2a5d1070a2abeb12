package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dartest.dev/pkg/dartest/internal/domain"
	m "dartest.dev/pkg/dartest/internal/model"
)

var genClassFlag string

// genCmd represents the gen command.
var genCmd = newGenCmd()

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gen <source-file>",
		Short:         "Generate a companion test file",
		Long:          genLongDescription,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			source := m.Path(args[0])

			className, err := resolveClassName(ctx, source, genClassFlag)
			if err != nil {
				ui.NotifyError(ctx, err)
				return err
			}

			result, err := scaffolder.CreateTest(ctx, m.ClassInfo{
				SourcePath: source,
				ClassName:  className,
			})
			if err != nil {
				ui.NotifyError(ctx, err)
				return err
			}

			if !result.Created {
				ui.NotifyExists(ctx, result.TestPath)
				return nil
			}

			rel, relErr := fsAdapter.RelPath(result.Project.Root, result.TestPath)
			if relErr != nil {
				rel = result.TestPath
			}

			ui.NotifyCreated(ctx, string(rel))

			return nil
		},
	}

	cmd.Flags().StringVarP(&genClassFlag, "class", "c", "", "class to scaffold when the file declares more than one")

	return cmd
}

func init() {
	rootCmd.AddCommand(genCmd)
}

// resolveClassName picks the class the test group will be named after:
// the --class flag when given, the sole declaration otherwise, or an
// interactive choice when the file declares several.
func resolveClassName(ctx context.Context, source m.Path, flagValue string) (string, error) {
	content, err := fsAdapter.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}

	sites := domain.ScanClasses(string(content))

	if flagValue != "" {
		for _, site := range sites {
			if site.Name == flagValue {
				return site.Name, nil
			}
		}

		return "", fmt.Errorf("class %q not declared in %s", flagValue, source)
	}

	switch len(sites) {
	case 0:
		return "", fmt.Errorf("no class declaration found in %s", source)
	case 1:
		return sites[0].Name, nil
	}

	site, err := ui.PickClass(ctx, source, sites)
	if err != nil {
		return "", err
	}

	return site.Name, nil
}
