package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "dartest.dev/pkg/dartest/internal/model"
)

var (
	hasTestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	noTestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// SimpleUI implements UI using the cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayClassList prints the class table or the scan error.
func (s *SimpleUI) DisplayClassList(ctx context.Context, files []m.FileClasses, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("scan error: %v\n", err)
		return err
	}

	s.printf("%s", renderClassTable(files))

	return nil
}

// NotifyCreated announces a freshly scaffolded test file.
func (s *SimpleUI) NotifyCreated(ctx context.Context, relPath string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Created test: %s\n", relPath)
}

// NotifyExists announces that the companion test already exists.
func (s *SimpleUI) NotifyExists(ctx context.Context, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Test already exists: %s\n", path)
}

// NotifyError surfaces a failure to the user.
func (s *SimpleUI) NotifyError(ctx context.Context, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("Error: %v\n", err)
}

// PickClass cannot prompt without a terminal; it reports the candidates so
// the caller can re-run with an explicit class flag.
func (s *SimpleUI) PickClass(_ context.Context, source m.Path, sites []m.ClassSite) (m.ClassSite, error) {
	names := make([]string, 0, len(sites))
	for _, site := range sites {
		names = append(names, site.Name)
	}

	return m.ClassSite{}, fmt.Errorf(
		"%s declares %d classes (%s); pass --class to choose one",
		source, len(sites), strings.Join(names, ", "),
	)
}

// printf writes formatted output to the underlying cobra command's stdout.
func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderClassTable(files []m.FileClasses) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"FILE", "CLASS", "TEST"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	classCount := 0
	withTests := 0

	for _, file := range files {
		badge := noTestStyle.Render("✗")
		if file.HasTest {
			badge = hasTestStyle.Render("✓")
			withTests++
		}

		for _, class := range file.Classes {
			table.Append([]string{string(file.Source), class.Name, badge})

			classCount++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d files (%d with tests)", len(files), withTests),
		fmt.Sprintf("%d classes", classCount),
		"",
	})

	table.Render()

	return tableBuffer.String()
}
