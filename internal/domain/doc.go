// Package domain holds the shared types of the gift draw: groups,
// participants, exclusions, cycles and the error kinds every other package
// reports through.
//
// # Lifecycle
//
// A group starts in StatusDraft. A successful draw writes one receiver per
// participant and moves the group to StatusCompleted in the same
// transaction. StatusCompleted is terminal.
//
// # Cycle
//
// A Cycle is an ordering of participant ids where element i gives to element
// (i+1) mod n. Only orderings with n >= 3 are ever committed.
package domain
