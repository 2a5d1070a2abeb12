// Package domain implements the scanning, derivation and scaffolding logic
// of dartest.
package domain

import (
	"regexp"
	"strings"

	m "dartest.dev/pkg/dartest/internal/model"
)

// classDeclPattern matches a Dart class declaration prefix at the start of a
// line: any combination of class modifiers followed by the `class` keyword
// and an identifier. Group 1 spans the whole declaration prefix, group 2 is
// the class name.
var classDeclPattern = regexp.MustCompile(
	`^[ \t]*((?:(?:abstract|base|interface|final|sealed|mixin)[ \t]+)*class[ \t]+([A-Za-z_][A-Za-z0-9_]*))`,
)

// ScanClasses scans document text line by line and reports every class
// declaration site. This is a single-line heuristic: declarations whose
// modifiers, keyword and name span multiple lines are not detected. The scan
// cannot fail; lines that do not match simply produce no site.
func ScanClasses(text string) []m.ClassSite {
	var sites []m.ClassSite

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		match := classDeclPattern.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}

		sites = append(sites, m.ClassSite{
			LineText: line,
			Line:     i,
			Name:     line[match[4]:match[5]],
			StartCol: match[2],
			EndCol:   match[3],
		})
	}

	return sites
}

// IsDartSource reports whether path names a Dart source file that is not
// itself a test file.
func IsDartSource(path string) bool {
	return strings.HasSuffix(path, ".dart") && !strings.HasSuffix(path, "_test.dart")
}
