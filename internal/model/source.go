// Package model defines the data structures shared across dartest.
package model

// Path represents a file system path.
type Path string

// ClassSite is a class declaration found on a single line of a source file.
// Line is zero-based; StartCol/EndCol delimit the matched declaration prefix
// (modifiers through identifier) within LineText.
type ClassSite struct {
	LineText string
	Line     int
	Name     string
	StartCol int
	EndCol   int
}

// ClassInfo identifies the class a scaffold request targets.
type ClassInfo struct {
	SourcePath Path
	ClassName  string
}

// TestFileInfo is the derived location of a companion test file together with
// the import line the test should use. Immutable once computed.
type TestFileInfo struct {
	TestPath   Path
	ImportPath string
}

// Project describes a resolved Dart project.
type Project struct {
	Root Path

	// PackageName is empty when pubspec.yaml is missing or unreadable.
	PackageName string
}

// FileClasses pairs a source file with the classes declared in it and
// whether a companion test file already exists.
type FileClasses struct {
	Source  Path
	Classes []ClassSite
	HasTest bool
}
