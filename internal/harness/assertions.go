package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/exclusion"
	"github.com/roach88/giftcycle/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, event := range e.Trace {
			if event.Type != "invocation" {
				continue
			}
			outcome := "?"
			if c := completionAt(e.Trace, i); c != nil {
				outcome = c.OutputCase
			}
			fmt.Fprintf(&buf, "  [%d] %s as %s %v -> %s\n", event.Seq, event.Action, event.As, event.Args, outcome)
		}
	}

	return buf.String()
}

// matchingInvocations returns the trace indexes of invocations of action
// whose outcome is outputCase (any outcome when outputCase is empty).
func matchingInvocations(trace []TraceEvent, action, outputCase string) []int {
	var out []int
	for i, event := range trace {
		if event.Type != "invocation" || event.Action != action {
			continue
		}
		if outputCase != "" {
			c := completionAt(trace, i)
			if c == nil || c.OutputCase != outputCase {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

// assertTraceContains checks if the trace contains an invocation matching
// the specified action and args (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	expected, err := normalizeMap(assertion.Args)
	if err != nil {
		return fmt.Errorf("trace_contains: invalid args: %w", err)
	}

	for _, i := range matchingInvocations(trace, assertion.Action, assertion.Case) {
		if matchSubset(trace[i].Args, expected) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("action %s with args %v (case %q)", assertion.Action, assertion.Args, assertion.Case),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if actions appear in the specified order.
// Actions don't need to be consecutive (intervening actions are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	invoked := lo.FilterMap(trace, func(e TraceEvent, _ int) (string, bool) {
		return e.Action, e.Type == "invocation"
	})

	next := 0
	for _, action := range invoked {
		if next < len(assertion.Actions) && action == assertion.Actions[next] {
			next++
		}
	}
	if next == len(assertion.Actions) {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("actions in order: %v", assertion.Actions),
		Actual:   fmt.Sprintf("%s not found after %v", assertion.Actions[next], assertion.Actions[:next]),
		Trace:    trace,
	}
}

// assertTraceCount checks if the action appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := len(matchingInvocations(trace, assertion.Action, assertion.Case))
	if count == assertion.Count {
		return nil
	}

	what := assertion.Action
	if assertion.Case != "" {
		what = fmt.Sprintf("%s -> %s", assertion.Action, assertion.Case)
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, what),
		Actual:   fmt.Sprintf("%d occurrences", count),
		Trace:    trace,
	}
}

// groupState is the stored state final_state assertions compare against.
type groupState struct {
	Group        domain.Group
	Participants []domain.Participant
	Exclusions   []domain.Exclusion
}

func loadState(ctx context.Context, st *store.Store, groupID string) (groupState, error) {
	g, err := st.LoadGroup(ctx, groupID)
	if err != nil {
		return groupState{}, err
	}
	ps, err := st.LoadParticipants(ctx, groupID)
	if err != nil {
		return groupState{}, err
	}
	exs, err := st.LoadExclusions(ctx, groupID)
	if err != nil {
		return groupState{}, err
	}
	return groupState{Group: g, Participants: ps, Exclusions: exs}, nil
}

// fields returns the values final_state can assert on.
func (s groupState) fields() map[string]any {
	assigned := lo.CountBy(s.Participants, func(p domain.Participant) bool {
		return p.ReceiverID != ""
	})
	return map[string]any{
		"status":       string(s.Group.Status),
		"participants": len(s.Participants),
		"exclusions":   len(s.Exclusions),
		"assigned":     assigned,
	}
}

// assertFinalState checks the stored group against the expected fields.
// Values are compared by their printed form so YAML ints match Go ints.
func assertFinalState(ctx context.Context, st *store.Store, groupID string, assertion Assertion) error {
	state, err := loadState(ctx, st, groupID)
	if err != nil {
		return fmt.Errorf("final_state: %w", err)
	}
	actual := state.fields()

	var mismatches []string
	for _, field := range finalStateFields {
		want, ok := assertion.Expect[field]
		if !ok {
			continue
		}
		if fmt.Sprint(want) != fmt.Sprint(actual[field]) {
			mismatches = append(mismatches, fmt.Sprintf("%s=%v (want %v)", field, actual[field], want))
		}
	}
	if len(mismatches) == 0 {
		return nil
	}

	return &AssertionError{
		Type:     AssertFinalState,
		Expected: fmt.Sprintf("%v", assertion.Expect),
		Actual:   strings.Join(mismatches, ", "),
	}
}

// assertSingleCycle checks that the stored receivers form one cycle through
// every participant and that no edge is excluded.
func assertSingleCycle(ctx context.Context, st *store.Store, groupID string) error {
	state, err := loadState(ctx, st, groupID)
	if err != nil {
		return fmt.Errorf("single_cycle: %w", err)
	}

	receivers := lo.SliceToMap(state.Participants, func(p domain.Participant) (string, string) {
		return p.ID, p.ReceiverID
	})
	if !domain.IsSingleCycle(receivers) {
		return &AssertionError{
			Type:     AssertSingleCycle,
			Expected: "receivers form a single cycle",
			Actual:   fmt.Sprintf("%v", receivers),
		}
	}

	graph := exclusion.New(state.Exclusions)
	for giver, receiver := range receivers {
		if graph.Forbidden(giver, receiver) {
			return &AssertionError{
				Type:     AssertSingleCycle,
				Expected: "no excluded pair in the cycle",
				Actual:   fmt.Sprintf("%s gives to %s", giver, receiver),
			}
		}
	}
	return nil
}

// AssertionContext provides database access for state assertions.
type AssertionContext struct {
	Store   *store.Store
	GroupID string
	Ctx     context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for state assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState, AssertSingleCycle:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: %s requires database context", i, assertion.Type)
			} else if assertion.Type == AssertFinalState {
				err = assertFinalState(actx.Ctx, actx.Store, actx.GroupID, assertion)
			} else {
				err = assertSingleCycle(actx.Ctx, actx.Store, actx.GroupID)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

