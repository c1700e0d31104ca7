// Package submission turns a workload issue body into a validated, immutable
// Submission.
//
// Parsing runs in three stages. The body is segmented into the ten positional
// answers of the issue form, the business rules run over those answers and
// accumulate every violation, and the assembled record is checked against a
// declarative JSON schema before the Submission is constructed. Rule and
// schema failures are both *goerrors.Error values in the validation category;
// their text codes tell them apart and Messages returns the human-readable
// list in detection order.
package submission
