package framework

import (
	"errors"
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Skipped returns the results of tests that were skipped, either by a filter or by the test
// itself.
func (r Results) Skipped() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if t.Skipped {
			ret = append(ret, t)
		}
	}
	return ret
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a new TestID with name appended to the path.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// reformatError indents continuation lines so multi-line errors stay readable under a test
// heading.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	if len(lines) < 2 {
		return err
	}
	return errors.New(strings.Join(lines, "\n  "))
}
