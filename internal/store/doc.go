// Package store provides SQLite-backed durable storage for gift draws.
//
// Tables:
//   - groups: owner, title and draw status (DRAFT or COMPLETED)
//   - participants: members of a group, with receiver_id once drawn
//   - exclusions: directed forbidden (who, whom) pairs per group
//
// # Critical Patterns
//
// Atomic draw commit:
//   - CommitCycle writes every receiver_id and the status transition in one
//     transaction, after re-reading all preconditions inside it
//   - The status update is conditional (WHERE status = 'DRAFT'), so at most
//     one commit per group can ever succeed
//
// Schema-level invariants:
//   - UNIQUE partial index on receiver_id: at most one giver per receiver
//   - CHECK receiver_id <> id: nobody gives to themselves
//   - UNIQUE(group_id, who_id, whom_id) and CHECK who_id <> whom_id on exclusions
//
// Deterministic reads:
//   - Participants are ordered by seq ASC, id ASC
//   - Exclusions are ordered by who_id ASC, whom_id ASC
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//   - One open connection: writes are serialized in-process
//
// Errors that callers can act on are *domain.Error values (NOT_FOUND,
// WRONG_STATE, DUPLICATE, ...). Everything else is a wrapped driver error.
package store
