package adapter

import (
	"regexp"

	"gopkg.in/yaml.v3"

	m "dartest.dev/pkg/dartest/internal/model"
)

// PubspecReader resolves the package name declared in a project manifest.
type PubspecReader interface {
	// PackageName returns the `name:` entry of <root>/pubspec.yaml, or the
	// empty string when the manifest is missing, unparsable, or declares a
	// name that is not a valid Dart package identifier. Absence is a valid
	// state, never an error.
	PackageName(root m.Path) string
}

// packageNamePattern is the identifier shape pub allows for package names.
var packageNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// nameLinePattern is a line-level fallback for manifests that fail strict
// YAML parsing but still carry a plain `name:` entry.
var nameLinePattern = regexp.MustCompile(`(?m)^name:\s*([a-z_][a-z0-9_]*)\s*$`)

// LocalPubspecReader reads pubspec.yaml through a ProjectFSAdapter.
type LocalPubspecReader struct {
	fs ProjectFSAdapter
}

// NewLocalPubspecReader constructs a LocalPubspecReader backed by fs.
func NewLocalPubspecReader(fs ProjectFSAdapter) *LocalPubspecReader {
	return &LocalPubspecReader{fs: fs}
}

// PackageName implements PubspecReader.
func (r *LocalPubspecReader) PackageName(root m.Path) string {
	content, err := r.fs.ReadFile(r.fs.JoinPath(string(root), manifestFileName))
	if err != nil {
		return ""
	}

	var manifest struct {
		Name string `yaml:"name"`
	}

	if err := yaml.Unmarshal(content, &manifest); err == nil && packageNamePattern.MatchString(manifest.Name) {
		return manifest.Name
	}

	if match := nameLinePattern.FindSubmatch(content); match != nil {
		return string(match[1])
	}

	return ""
}
