package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTrace: exclude.add ok, draw UNAUTHORIZED, draw ok, reveal ok.
func sampleTrace() []TraceEvent {
	r := NewResult()
	r.AddInvocationTrace(OpExcludeAdd, "u-ann", map[string]any{"who": "a", "whom": "b"}, 1)
	r.AddCompletionTrace(CaseOK, nil, 2)
	r.AddInvocationTrace(OpDraw, "u-ben", nil, 3)
	r.AddCompletionTrace("UNAUTHORIZED", nil, 4)
	r.AddInvocationTrace(OpDraw, "u-ann", nil, 5)
	r.AddCompletionTrace(CaseOK, nil, 6)
	r.AddInvocationTrace(OpReveal, "u-ann", map[string]any{"participant": "a"}, 7)
	r.AddCompletionTrace(CaseOK, nil, 8)
	return r.Trace
}

func TestAssertTraceContains(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   bool
	}{
		{"action only", Assertion{Action: OpReveal}, false},
		{"matching args", Assertion{Action: OpExcludeAdd, Args: map[string]any{"who": "a"}}, false},
		{"wrong args", Assertion{Action: OpExcludeAdd, Args: map[string]any{"who": "c"}}, true},
		{"with case", Assertion{Action: OpDraw, Case: "UNAUTHORIZED"}, false},
		{"case never seen", Assertion{Action: OpDraw, Case: "INFEASIBLE"}, true},
		{"absent action", Assertion{Action: OpExcludeRemove}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assertion.Type = AssertTraceContains
			err := assertTraceContains(sampleTrace(), tt.assertion)
			if tt.wantErr {
				require.Error(t, err)
				var ae *AssertionError
				require.ErrorAs(t, err, &ae)
				assert.Equal(t, AssertTraceContains, ae.Type)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssertTraceOrder(t *testing.T) {
	tests := []struct {
		name    string
		actions []string
		wantErr bool
	}{
		{"in order", []string{OpExcludeAdd, OpDraw, OpReveal}, false},
		{"gaps allowed", []string{OpExcludeAdd, OpReveal}, false},
		{"repeated action", []string{OpDraw, OpDraw}, false},
		{"reversed", []string{OpReveal, OpExcludeAdd}, true},
		{"missing", []string{OpDraw, OpExcludeList}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertTraceOrder(sampleTrace(), Assertion{Type: AssertTraceOrder, Actions: tt.actions})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssertTraceCount(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   bool
	}{
		{"all draws", Assertion{Action: OpDraw, Count: 2}, false},
		{"successful draws", Assertion{Action: OpDraw, Case: CaseOK, Count: 1}, false},
		{"zero", Assertion{Action: OpExcludeRemove, Count: 0}, false},
		{"wrong count", Assertion{Action: OpDraw, Count: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assertion.Type = AssertTraceCount
			err := assertTraceCount(sampleTrace(), tt.assertion)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Expected: 1 occurrences of draw")
				assert.Contains(t, err.Error(), "Actual: 2 occurrences")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "1 occurrences of draw",
		Actual:   "2 occurrences",
		Trace:    sampleTrace(),
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: trace_count")
	assert.Contains(t, msg, "[3] draw as u-ben")
	assert.Contains(t, msg, "-> UNAUTHORIZED")
	assert.NotContains(t, msg, "[4]", "completions are folded into their invocation")
}

func TestEvaluateAssertions_NeedsStore(t *testing.T) {
	result := &Result{Trace: sampleTrace()}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Action: OpDraw, Count: 2},
		{Type: AssertFinalState, Expect: map[string]any{"status": "DRAFT"}},
		{Type: AssertSingleCycle},
		{Type: "vibes"},
	}, nil)

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "final_state requires database context")
	assert.Contains(t, errs[1], "single_cycle requires database context")
	assert.Contains(t, errs[2], `unknown assertion type "vibes"`)
}
