package domain

import "fmt"

// testTemplate is the boilerplate body of a freshly scaffolded test file:
// one import referencing the derived import path and an empty test group
// named after the class.
const testTemplate = `import '%s';

void main() {
  group('%s', () {});
}
`

// RenderTest renders the boilerplate content for a new test file. Pure and
// byte-deterministic: identical inputs produce identical output.
func RenderTest(className, importPath string) string {
	return fmt.Sprintf(testTemplate, importPath, className)
}
