package framework

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// Type is called by the command line parser for help text.
func (r *RegexList) Type() string { return "regex" }

// PrintFilterDescription describes which tests will be skipped because of the filter
// parameters, or because some providers can't run in this environment.
func PrintFilterDescription(out io.Writer, filters RegexFilters, unavailableProviders map[string]error) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}

	if len(unavailableProviders) > 0 {
		ids := make([]string, 0, len(unavailableProviders))
		for id := range unavailableProviders {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Fprintln(out, "These providers are unavailable in this environment:")
		for _, id := range ids {
			fmt.Fprintf(out, "  %s: %s\n", id, unavailableProviders[id])
		}
		fmt.Fprintln(out)
	}
}
