package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "dartest.dev/pkg/dartest/internal/model"
)

func newBufferedUI() (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return NewSimpleUI(cmd), out
}

func TestSimpleUI_DisplayClassList(t *testing.T) {
	ui, out := newBufferedUI()

	files := []m.FileClasses{
		{
			Source:  "lib/app.dart",
			Classes: []m.ClassSite{{Name: "App"}},
			HasTest: true,
		},
		{
			Source:  "lib/models/user.dart",
			Classes: []m.ClassSite{{Name: "User"}, {Name: "UserRole"}},
			HasTest: false,
		},
	}

	err := ui.DisplayClassList(context.Background(), files, nil)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "lib/app.dart")
	assert.Contains(t, output, "App")
	assert.Contains(t, output, "User")
	assert.Contains(t, output, "UserRole")
	assert.Contains(t, output, "3 classes")
	assert.Contains(t, output, "2 files (1 with tests)")
}

func TestSimpleUI_DisplayClassList_Error(t *testing.T) {
	ui, out := newBufferedUI()

	scanErr := errors.New("boom")

	err := ui.DisplayClassList(context.Background(), nil, scanErr)
	require.ErrorIs(t, err, scanErr)

	assert.Contains(t, out.String(), "boom")
}

func TestSimpleUI_Notifications(t *testing.T) {
	ui, out := newBufferedUI()
	ctx := context.Background()

	ui.NotifyCreated(ctx, "test/models/user_test.dart")
	ui.NotifyExists(ctx, "/proj/test/app_test.dart")
	ui.NotifyError(ctx, errors.New("disk full"))

	output := out.String()
	assert.Contains(t, output, "Created test: test/models/user_test.dart")
	assert.Contains(t, output, "Test already exists: /proj/test/app_test.dart")
	assert.Contains(t, output, "Error: disk full")
}

func TestSimpleUI_PickClassListsCandidates(t *testing.T) {
	ui, _ := newBufferedUI()

	sites := []m.ClassSite{{Name: "Alpha"}, {Name: "Beta"}}

	_, err := ui.PickClass(context.Background(), "lib/pair.dart", sites)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Alpha, Beta")
	assert.Contains(t, err.Error(), "--class")
}

func TestNewUI_SelectsImplementation(t *testing.T) {
	cmd := &cobra.Command{}

	_, isSimple := NewUI(cmd, false).(*SimpleUI)
	assert.True(t, isSimple)

	_, isTUI := NewUI(cmd, true).(*TUI)
	assert.True(t, isTUI)
}
