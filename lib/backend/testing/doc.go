// Package testing provides a standardized conformance suite for backend
// implementations that satisfy the backend.IBackend interface.
//
//   - RunBackendTests: Runs a standardized test suite to validate
//     implementations (single-key operations, list pagination and the
//     optional clear capability, which is skipped for backends that do not
//     support it).
//
// The suite is driven by a factory function so every subtest runs against a
// fresh backend instance.
package testing
