// Package engine implements the giftcycle operations: running a group's draw,
// revealing one participant's receiver, and managing exclusions.
//
// ARCHITECTURE:
//
// Each operation follows the same shape:
// 1. Load the group and the participants involved from Storage
// 2. Ask the access package whether the requester may proceed
// 3. Do the in-memory work (sampling for a draw)
// 4. Hand the result to one Storage transaction that re-checks every
//    precondition before writing
//
// The engine holds no per-group state, so it is safe for concurrent use.
// Racing draws on one group are settled by Storage.CommitCycle: exactly one
// commits, the others see WRONG_STATE.
//
// SECRECY:
//
// RunDraw never returns or logs who gives to whom. The only read path for a
// receiver is GetAssignment, gated by access.CanReveal.
package engine
