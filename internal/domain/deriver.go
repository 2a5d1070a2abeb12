package domain

import (
	"path"
	"path/filepath"
	"strings"

	m "dartest.dev/pkg/dartest/internal/model"
)

// testSuffix is appended to a source base name to form its test file name.
const testSuffix = "_test"

// Deriver computes where a source file's companion test belongs and what
// import line the test should use. Derivation is pure string math: for a
// fixed (root, source, package name) triple the output is identical on every
// call and on every platform. Import paths always use forward slashes.
type Deriver struct {
	// LibDir is the conventional library directory name under the project
	// root whose tree is mirrored into TestDir.
	LibDir string

	// TestDir is the top-level directory that mirrors LibDir.
	TestDir string
}

// NewDeriver returns a Deriver configured with the pub conventions.
func NewDeriver(libDir, testDir string) *Deriver {
	if libDir == "" {
		libDir = "lib"
	}

	if testDir == "" {
		testDir = "test"
	}

	return &Deriver{LibDir: libDir, TestDir: testDir}
}

// DeriveTestFile returns the test path and import line for source within the
// project rooted at root. packageName may be empty; the library branch then
// falls back to a relative import from the test file's directory.
func (d *Deriver) DeriveTestFile(root, source m.Path, packageName string) m.TestFileInfo {
	ext := filepath.Ext(string(source))
	base := strings.TrimSuffix(filepath.Base(string(source)), ext)
	testName := base + testSuffix + ext

	if rel, err := filepath.Rel(string(root), string(source)); err == nil {
		if underLib, ok := strings.CutPrefix(filepath.ToSlash(rel), d.LibDir+"/"); ok {
			return d.deriveLibrary(root, source, underLib, testName, packageName)
		}
	}

	// Outside the library tree the test sits next to its source, so the
	// import is a plain same-directory reference.
	return m.TestFileInfo{
		TestPath:   m.Path(filepath.Join(filepath.Dir(string(source)), testName)),
		ImportPath: "./" + base + ext,
	}
}

// deriveLibrary mirrors lib/** into test/** and prefers the package: import
// form when a package name is known.
func (d *Deriver) deriveLibrary(root, source m.Path, underLib, testName, packageName string) m.TestFileInfo {
	testDir := filepath.Join(string(root), d.TestDir)

	// A source directly under lib/ maps to the test root itself; no nested
	// directory is introduced.
	if dir := path.Dir(underLib); dir != "." {
		testDir = filepath.Join(testDir, filepath.FromSlash(dir))
	}

	testPath := m.Path(filepath.Join(testDir, testName))

	if packageName != "" {
		return m.TestFileInfo{
			TestPath:   testPath,
			ImportPath: "package:" + packageName + "/" + underLib,
		}
	}

	rel, err := filepath.Rel(testDir, string(source))
	if err != nil {
		rel = string(source)
	}

	return m.TestFileInfo{
		TestPath:   testPath,
		ImportPath: filepath.ToSlash(rel),
	}
}
