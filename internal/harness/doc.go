// Package harness runs giftcycle scenarios end to end.
//
// A scenario seeds one group from a group file, drives the engine through a
// flow of operations as named requesters, and checks the outcome of every
// step plus the final stored state. Each run uses a fresh in-memory database
// and a deterministic random source, so the recorded trace can be compared
// against a golden file.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	group: groups/trio.yaml      # relative to the scenario file
//	rand: [1, 1]                 # scripted sampler values; or seed: 7
//	strategy: retry              # optional, retry or backtrack
//	flow:
//	  - invoke: exclude.add
//	    as: u-ann
//	    args: { who: a, whom: b }
//	    expect:
//	      case: ok
//	  - invoke: draw
//	    as: u-ben
//	    expect:
//	      case: UNAUTHORIZED
//	assertions:
//	  - type: trace_count
//	    action: draw
//	    case: ok
//	    count: 1
//	  - type: final_state
//	    expect: { status: COMPLETED, assigned: 3 }
//	  - type: single_cycle
//
// # Operations
//
//   - draw: no args
//   - reveal: participant
//   - exclude.add: who, whom, mutual (optional bool)
//   - exclude.remove: exclusion
//   - exclude.list: participant
//
// A step's case is "ok" on success or the domain error code otherwise.
//
// # Assertion Types
//
//   - trace_contains: an invocation of action with matching args (and case, if set)
//   - trace_order: actions were invoked in this order
//   - trace_count: action was invoked exactly count times (with case, if set)
//   - final_state: group status and participant, exclusion and assigned counts
//   - single_cycle: stored receivers form one cycle that respects every exclusion
package harness
