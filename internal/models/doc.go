// Package models defines the core domain models for settler.
//
// # Persisted Models
//
//   - Expense: an immutable shared expense with its per-participant Splits
//   - Settlement: a payment record between two members with a lifecycle status
//   - Group: the set of members sharing expenses
//
// # Derived Models
//
// The following are computed values, never persisted:
//
//   - Balance: a positive directed debt between two members
//   - NetPosition: one member's signed balance across all counterparties
//   - Suggestion: a recommended payment produced by the optimizer
//   - Progress: how much of a group's spending has been settled
//   - ConsistencyReport: whether split amounts reconcile with expense totals
//
// # Design Principles
//
//  1. Members are referenced by ID strings to avoid circular references.
//  2. Monetary amounts are float64 values carried at two-decimal precision;
//     rounding happens at output boundaries (see internal/money).
//  3. Derived values are always recomputed from current state, never stored.
package models
