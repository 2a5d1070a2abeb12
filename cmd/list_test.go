package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dartest.dev/pkg/dartest/internal/domain"
	m "dartest.dev/pkg/dartest/internal/model"
)

// fakeWorkflow captures the arguments the list command builds.
type fakeWorkflow struct {
	gotArgs domain.ListArgs
	err     error
}

func (f *fakeWorkflow) List(_ context.Context, args domain.ListArgs) error {
	f.gotArgs = args

	return f.err
}

func swapWorkflow(t *testing.T) *fakeWorkflow {
	t.Helper()

	fake := &fakeWorkflow{}

	original := workflow
	workflow = fake
	t.Cleanup(func() { workflow = original })

	return fake
}

func TestListCmd_ForwardsPaths(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "./lib", "./tool"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, []m.Path{"./lib", "./tool"}, fake.gotArgs.Paths)
}

func TestListCmd_ParallelFlag(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "--parallel", "8"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, 8, fake.gotArgs.Parallel)
}

func TestListCmd_ExcludeFlag(t *testing.T) {
	fake := swapWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "-x", `\.g\.dart$`})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, fake.gotArgs.Exclude, `\.g\.dart$`)
}
