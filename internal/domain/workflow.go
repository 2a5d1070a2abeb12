package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"dartest.dev/pkg/dartest/internal/adapter"
	"dartest.dev/pkg/dartest/internal/controller"
	m "dartest.dev/pkg/dartest/internal/model"
)

// ListArgs carries the inputs of a project scan.
type ListArgs struct {
	Paths    []m.Path
	Exclude  []string
	Parallel int
}

// Workflow ties project resolution, class scanning and test presence
// together for the CLI commands.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	fs      adapter.ProjectFSAdapter
	pubspec adapter.PubspecReader
	deriver *Deriver
	cache   *PresenceCache
	ui      controller.UI
}

// NewWorkflow constructs a Workflow from the shared adapters, the presence
// cache and the UI controller.
func NewWorkflow(
	fs adapter.ProjectFSAdapter,
	pubspec adapter.PubspecReader,
	deriver *Deriver,
	cache *PresenceCache,
	ui controller.UI,
) Workflow {
	return &workflow{
		fs:      fs,
		pubspec: pubspec,
		deriver: deriver,
		cache:   cache,
		ui:      ui,
	}
}

// List scans the requested paths (default: the project's library tree) for
// class declarations and displays them with their companion-test status.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	files, err := w.collect(ctx, args)

	return w.ui.DisplayClassList(ctx, files, err)
}

func (w *workflow) collect(ctx context.Context, args ListArgs) ([]m.FileClasses, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exclude, err := compilePatterns(args.Exclude)
	if err != nil {
		return nil, err
	}

	start := m.Path(".")
	if len(args.Paths) > 0 {
		start = args.Paths[0]
	}

	root, err := w.fs.FindProjectRoot(start)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	project := m.Project{Root: root, PackageName: w.pubspec.PackageName(root)}

	if err := w.cache.Rebuild(ctx, w.fs, w.deriver, project, args.Parallel); err != nil {
		return nil, fmt.Errorf("rebuild test presence cache: %w", err)
	}

	slog.Debug("scanning project",
		"root", project.Root,
		"package", project.PackageName,
		"cached", w.cache.Len(),
	)

	scanRoots, err := w.resolveScanRoots(project, args.Paths)
	if err != nil {
		return nil, err
	}

	var files []m.FileClasses

	for _, scanRoot := range scanRoots {
		collected, err := w.collectUnder(project, scanRoot, exclude)
		if err != nil {
			return nil, err
		}

		files = append(files, collected...)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Source < files[j].Source })

	return files, nil
}

// resolveScanRoots normalizes the requested paths to absolute form so they
// agree with the cache keys built during Rebuild. With no explicit paths the
// project's library tree is scanned; a project without one yields nothing.
func (w *workflow) resolveScanRoots(project m.Project, paths []m.Path) ([]m.Path, error) {
	if len(paths) == 0 {
		libRoot := w.fs.JoinPath(string(project.Root), w.deriver.LibDir)
		if _, err := w.fs.FileInfo(libRoot); err != nil {
			return nil, nil
		}

		return []m.Path{libRoot}, nil
	}

	roots := make([]m.Path, 0, len(paths))

	for _, path := range paths {
		abs, err := w.fs.AbsPath(path)
		if err != nil {
			return nil, fmt.Errorf("resolve path %s: %w", path, err)
		}

		roots = append(roots, abs)
	}

	return roots, nil
}

func (w *workflow) collectUnder(project m.Project, scanRoot m.Path, exclude []*regexp.Regexp) ([]m.FileClasses, error) {
	testRoot := string(w.fs.JoinPath(string(project.Root), w.deriver.TestDir))

	var files []m.FileClasses

	err := w.fs.Walk(scanRoot, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != string(scanRoot) {
				return filepath.SkipDir
			}

			if path == testRoot {
				return filepath.SkipDir
			}

			return nil
		}

		if !IsDartSource(path) || matchesAny(exclude, path) {
			return nil
		}

		content, err := w.fs.ReadFile(m.Path(path))
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		classes := ScanClasses(string(content))
		if len(classes) == 0 {
			return nil
		}

		files = append(files, m.FileClasses{
			Source:  m.Path(path),
			Classes: classes,
			HasTest: w.hasTest(project, m.Path(path)),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// hasTest answers from the cache and falls back to a direct existence check
// for sources outside the library tree, recording the answer for next time.
func (w *workflow) hasTest(project m.Project, source m.Path) bool {
	if present, known := w.cache.Has(source); known {
		return present
	}

	info := w.deriver.DeriveTestFile(project.Root, source, project.PackageName)
	_, err := w.fs.FileInfo(info.TestPath)
	present := err == nil

	w.cache.Set(source, present)

	return present
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}
