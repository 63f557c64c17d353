// Package lifecycle drives a single constructed test case through its
// setUp, body, tearDown and cleanup phases and reports exactly one outcome
// to a result.Reporter.
//
// Phase ordering is a contract, not incidental: setUp runs first, the body
// only if setUp succeeded, tearDown whenever the body ran, and registered
// cleanups always run afterwards in reverse registration order, each one
// isolated from the failures of the others.
//
// Custom setUp and tearDown phases must upcall BaseSetUp / BaseTearDown.
// The controller detects skipped upcalls and reports them as errors carrying
// the fixed diagnostics "TestCase.setUp was not called" and
// "TestCase.tearDown was not called".
package lifecycle
