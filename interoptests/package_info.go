// Package interoptests contains the dry-run interop suite: for each planned case it resolves
// the client and server providers, decides whether the combination can run, and synthesizes
// the command lines and readiness coordinators that a runner would use.
//
// Test infrastructure that is not specific to TLS providers is in the lower-level framework
// package.
package interoptests
