// Package framework contains the low-level test-context infrastructure used by the interop
// suites, independent of what is being tested.
//
// A Context is similar to Go's *testing.T: pieces of test logic are associated with a
// TestID, may be skipped or failed, and accumulate results. Each test gets its own
// CapturingLogger for debug output, which a TestLogger can print when the test fails.
//
// The domain-specific code that knows which providers to run is responsible for building
// the test tree on top of a Context.
package framework
