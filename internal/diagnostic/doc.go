// Package diagnostic provides structured errors, warnings and notes produced
// while validating a codecgen run.
//
// Key capabilities:
//   - Unknown type and alternative reports with "did you mean" suggestions
//   - Wire name collisions inside a record
//   - Field types the codec engine cannot traverse
//   - Notes about skipped fields and derived union alternatives
package diagnostic
