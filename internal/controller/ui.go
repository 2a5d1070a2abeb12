// Package controller provides the user-facing output and interaction
// surfaces of dartest.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "dartest.dev/pkg/dartest/internal/model"
)

// UI is how the domain layer talks to the user. Implementations can render
// plain text or an interactive terminal UI.
type UI interface {
	// DisplayClassList renders the scanned class sites with their
	// companion-test status, or the scan error. The passed error is
	// returned after being displayed.
	DisplayClassList(ctx context.Context, files []m.FileClasses, err error) error

	// NotifyCreated announces a freshly scaffolded test file by its
	// project-relative path.
	NotifyCreated(ctx context.Context, relPath string)

	// NotifyExists announces that the companion test already exists and was
	// left untouched.
	NotifyExists(ctx context.Context, path m.Path)

	// NotifyError surfaces a failure with its stringified cause.
	NotifyError(ctx context.Context, err error)

	// PickClass asks the user to choose one of several class declarations
	// found in source.
	PickClass(ctx context.Context, source m.Path, sites []m.ClassSite) (m.ClassSite, error)
}

// NewUI selects the UI implementation for the current terminal: interactive
// picking when stdout is a TTY, plain output otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	simple := NewSimpleUI(cmd)
	if isTTY {
		return NewTUI(simple)
	}

	return simple
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
