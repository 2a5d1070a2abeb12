package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"dartest.dev/pkg/dartest/internal/adapter"
	m "dartest.dev/pkg/dartest/internal/model"
)

// ScaffoldResult reports the outcome of a scaffold request.
type ScaffoldResult struct {
	Project  m.Project
	TestPath m.Path
	Created  bool
}

// Scaffolder creates the companion test file for a class, or surfaces the
// existing one. It is the only component with side effects; directory and
// file creation are confined here.
type Scaffolder interface {
	CreateTest(ctx context.Context, info m.ClassInfo) (ScaffoldResult, error)
}

type scaffolder struct {
	fs      adapter.ProjectFSAdapter
	pubspec adapter.PubspecReader
	deriver *Deriver
	cache   *PresenceCache
}

// NewScaffolder constructs a Scaffolder backed by the provided filesystem
// adapter and manifest reader.
func NewScaffolder(
	fs adapter.ProjectFSAdapter,
	pubspec adapter.PubspecReader,
	deriver *Deriver,
	cache *PresenceCache,
) Scaffolder {
	return &scaffolder{
		fs:      fs,
		pubspec: pubspec,
		deriver: deriver,
		cache:   cache,
	}
}

// CreateTest resolves the project around info.SourcePath, derives the test
// location, and either reports the existing test file or writes a new one.
// An existing test file is never touched.
func (s *scaffolder) CreateTest(ctx context.Context, info m.ClassInfo) (ScaffoldResult, error) {
	if err := ctx.Err(); err != nil {
		return ScaffoldResult{}, err
	}

	if info.SourcePath == "" {
		return ScaffoldResult{}, fmt.Errorf("source path is empty")
	}

	source, err := s.fs.AbsPath(info.SourcePath)
	if err != nil {
		return ScaffoldResult{}, fmt.Errorf("resolve source path: %w", err)
	}

	root, err := s.fs.FindProjectRoot(source)
	if err != nil {
		return ScaffoldResult{}, fmt.Errorf("resolve project root: %w", err)
	}

	// Package metadata is best effort; a missing or broken pubspec switches
	// the import to the relative fallback.
	project := m.Project{Root: root, PackageName: s.pubspec.PackageName(root)}

	testInfo := s.deriver.DeriveTestFile(project.Root, source, project.PackageName)

	if _, err := s.fs.FileInfo(testInfo.TestPath); err == nil {
		slog.Info("test file already exists", "source", source, "test", testInfo.TestPath)

		return ScaffoldResult{Project: project, TestPath: testInfo.TestPath}, nil
	}

	testDir := m.Path(filepath.Dir(string(testInfo.TestPath)))
	if err := s.fs.MkdirAll(testDir, 0o755); err != nil {
		return ScaffoldResult{}, fmt.Errorf("create test directory %s: %w", testDir, err)
	}

	content := RenderTest(info.ClassName, testInfo.ImportPath)
	if err := s.fs.WriteFile(testInfo.TestPath, []byte(content), 0o644); err != nil {
		return ScaffoldResult{}, fmt.Errorf("write test file %s: %w", testInfo.TestPath, err)
	}

	s.cache.Invalidate(source)

	slog.Info("created test file",
		"source", source,
		"test", testInfo.TestPath,
		"import", testInfo.ImportPath,
	)

	return ScaffoldResult{Project: project, TestPath: testInfo.TestPath, Created: true}, nil
}
