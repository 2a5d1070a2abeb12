package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dartest.dev/pkg/dartest/internal/adapter"
	m "dartest.dev/pkg/dartest/internal/model"
)

func newScaffolderUnderTest() Scaffolder {
	fs := adapter.NewLocalProjectFSAdapter()

	return NewScaffolder(fs, adapter.NewLocalPubspecReader(fs), NewDeriver("", ""), NewPresenceCache())
}

func TestCreateTest_LibrarySource(t *testing.T) {
	root, _ := newTestProject(t)
	source := writeProjectFile(t, root, "lib/models/user.dart", "class User {}\n")

	result, err := newScaffolderUnderTest().CreateTest(context.Background(), m.ClassInfo{
		SourcePath: m.Path(source),
		ClassName:  "User",
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, m.Path(root), result.Project.Root)
	assert.Equal(t, "my_app", result.Project.PackageName)
	assert.Equal(t, m.Path(filepath.Join(root, "test", "models", "user_test.dart")), result.TestPath)

	content, err := os.ReadFile(string(result.TestPath))
	require.NoError(t, err)
	assert.Equal(t, RenderTest("User", "package:my_app/models/user.dart"), string(content))
}

func TestCreateTest_NeverOverwritesExistingTest(t *testing.T) {
	root, _ := newTestProject(t)
	source := writeProjectFile(t, root, "lib/models/user.dart", "class User {}\n")
	existing := writeProjectFile(t, root, "test/models/user_test.dart", "// hand-written\n")

	result, err := newScaffolderUnderTest().CreateTest(context.Background(), m.ClassInfo{
		SourcePath: m.Path(source),
		ClassName:  "User",
	})
	require.NoError(t, err)

	assert.False(t, result.Created)
	assert.Equal(t, m.Path(existing), result.TestPath)

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "// hand-written\n", string(content))
}

func TestCreateTest_WithoutPackageNameFallsBackToRelativeImport(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "pubspec.yaml", "description: no name here\n")
	source := writeProjectFile(t, root, "lib/models/user.dart", "class User {}\n")

	result, err := newScaffolderUnderTest().CreateTest(context.Background(), m.ClassInfo{
		SourcePath: m.Path(source),
		ClassName:  "User",
	})
	require.NoError(t, err)
	require.True(t, result.Created)

	content, err := os.ReadFile(string(result.TestPath))
	require.NoError(t, err)
	assert.Equal(t, RenderTest("User", "../../lib/models/user.dart"), string(content))
}

func TestCreateTest_NonLibrarySource(t *testing.T) {
	root, _ := newTestProject(t)
	source := writeProjectFile(t, root, "scripts/tool.dart", "class Tool {}\n")

	result, err := newScaffolderUnderTest().CreateTest(context.Background(), m.ClassInfo{
		SourcePath: m.Path(source),
		ClassName:  "Tool",
	})
	require.NoError(t, err)
	require.True(t, result.Created)

	assert.Equal(t, m.Path(filepath.Join(root, "scripts", "tool_test.dart")), result.TestPath)

	content, err := os.ReadFile(string(result.TestPath))
	require.NoError(t, err)
	assert.Equal(t, RenderTest("Tool", "./tool.dart"), string(content))
}

func TestCreateTest_LibraryRootSource(t *testing.T) {
	root, _ := newTestProject(t)
	source := writeProjectFile(t, root, "lib/app.dart", "class App {}\n")

	result, err := newScaffolderUnderTest().CreateTest(context.Background(), m.ClassInfo{
		SourcePath: m.Path(source),
		ClassName:  "App",
	})
	require.NoError(t, err)
	require.True(t, result.Created)

	assert.Equal(t, m.Path(filepath.Join(root, "test", "app_test.dart")), result.TestPath)
}

func TestCreateTest_NoProjectRoot(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "orphan.dart")
	require.NoError(t, os.WriteFile(source, []byte("class Orphan {}\n"), 0o644))

	_, err := newScaffolderUnderTest().CreateTest(context.Background(), m.ClassInfo{
		SourcePath: m.Path(source),
		ClassName:  "Orphan",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve project root")

	// Nothing may be left on disk when resolution fails.
	_, statErr := os.Stat(filepath.Join(dir, "orphan_test.dart"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateTest_EmptySourcePath(t *testing.T) {
	_, err := newScaffolderUnderTest().CreateTest(context.Background(), m.ClassInfo{ClassName: "X"})

	require.Error(t, err)
}

func TestCreateTest_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newScaffolderUnderTest().CreateTest(ctx, m.ClassInfo{
		SourcePath: "lib/app.dart",
		ClassName:  "App",
	})

	require.ErrorIs(t, err, context.Canceled)
}
