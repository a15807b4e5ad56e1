package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"time"

	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/engine"
	"github.com/roach88/giftcycle/internal/groupfile"
	"github.com/roach88/giftcycle/internal/sampler"
	"github.com/roach88/giftcycle/internal/store"
	"github.com/roach88/giftcycle/internal/testutil"
)

// CaseOK is the output case of a successful step.
const CaseOK = "ok"

var harnessEpoch = time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

// Harness executes one scenario against a real engine and store.
type Harness struct {
	store   *store.Store
	engine  *engine.Engine
	groupID string
	seq     int64
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database. Generated ids come from
// sequential generators ("id-1", ... for the group file, "x-1", ... for rows
// created during the flow), so traces are reproducible.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Load the group file and seed it
// 3. Execute flow steps, checking expect clauses
// 4. Evaluate assertions against the trace and stored state
//
// A step failing with an infrastructure error (no domain code) aborts the run.
// So does a panic during the flow, such as a scripted Rand running out; it is
// returned as an error.
func Run(scenario *Scenario) (res *Result, err error) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("scenario %s aborted: %v", scenario.Name, r)
		}
	}()

	st, err := store.Open(":memory:",
		store.WithIDGenerator(testutil.NewSequentialGenerator("x")),
		store.WithClock(func() time.Time { return harnessEpoch }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	file, err := groupfile.Load(scenario.Group)
	if err != nil {
		return nil, fmt.Errorf("failed to load group file: %w", err)
	}
	seed, err := file.Seed(testutil.NewSequentialGenerator("id"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group file: %w", err)
	}
	stored, err := st.Seed(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to seed group: %w", err)
	}

	opts := sampler.DefaultOptions()
	if scenario.Strategy != "" {
		opts.Strategy = sampler.Strategy(scenario.Strategy)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	h := &Harness{
		store: st,
		engine: engine.New(st,
			engine.WithSamplerOptions(opts),
			engine.WithSource(sourceFor(scenario)),
			engine.WithLogger(logger),
		),
		groupID: stored.Group.ID,
		logger:  logger,
	}

	result := NewResult()
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	actx := &AssertionContext{
		Store:   st,
		GroupID: h.groupID,
		Ctx:     ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func sourceFor(s *Scenario) sampler.Source {
	if len(s.Rand) > 0 {
		return testutil.NewScriptedSource(s.Rand...)
	}
	seed := s.Seed
	if seed == 0 {
		seed = 1
	}
	return testutil.NewSource(seed)
}

func (h *Harness) next() int64 {
	h.seq++
	return h.seq
}

// executeFlow runs all flow steps and validates expect clauses.
//
// Each step:
// 1. Records the invocation in the trace
// 2. Calls the engine operation as the step's requester
// 3. Records the completion: case "ok" with the result, or the error code
// with its details
// 4. Checks the expect clause, if any
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		args, err := normalizeMap(step.Args)
		if err != nil {
			return fmt.Errorf("flow step %d: failed to convert args: %w", i, err)
		}
		result.AddInvocationTrace(step.Invoke, step.As, args, h.next())

		out, opErr := h.invoke(ctx, step)

		outputCase := CaseOK
		var payload any = out
		if opErr != nil {
			code := domain.CodeOf(opErr)
			if code == "" {
				return fmt.Errorf("flow step %d (%s): %w", i, step.Invoke, opErr)
			}
			outputCase = string(code)
			payload = nil
			if details := domainDetails(opErr); len(details) > 0 {
				payload = details
			}
		}

		compResult, err := normalize(payload)
		if err != nil {
			return fmt.Errorf("flow step %d: failed to convert result: %w", i, err)
		}
		result.AddCompletionTrace(outputCase, compResult, h.next())

		if step.Expect != nil {
			if msg := checkExpect(i, step, outputCase, compResult); msg != "" {
				result.AddError(msg)
			}
		}

		h.logger.Info("flow step completed",
			"step", i,
			"action", step.Invoke,
			"as", step.As,
			"output_case", outputCase,
		)
	}

	return nil
}

// invoke dispatches a step to the engine. A nil result with a nil error means
// the operation returns nothing on success.
func (h *Harness) invoke(ctx context.Context, step FlowStep) (any, error) {
	switch step.Invoke {
	case OpDraw:
		res, err := h.engine.RunDraw(ctx, h.groupID, step.As)
		return res, err
	case OpReveal:
		res, err := h.engine.GetAssignment(ctx, h.groupID, step.As, argString(step.Args, "participant"))
		return res, err
	case OpExcludeAdd:
		mutual, _ := step.Args["mutual"].(bool)
		res, err := h.engine.AddExclusion(ctx, domain.ExclusionRequest{
			GroupID:     h.groupID,
			RequesterID: step.As,
			Who:         argString(step.Args, "who"),
			Whom:        argString(step.Args, "whom"),
			Mutual:      mutual,
		})
		return res, err
	case OpExcludeRemove:
		return nil, h.engine.RemoveExclusion(ctx, h.groupID, step.As, argString(step.Args, "exclusion"))
	case OpExcludeList:
		res, err := h.engine.ListExclusions(ctx, h.groupID, step.As, argString(step.Args, "participant"))
		return res, err
	default:
		return nil, fmt.Errorf("unknown operation %q", step.Invoke)
	}
}

func checkExpect(index int, step FlowStep, outputCase string, actual any) string {
	if step.Expect.Case != outputCase {
		return fmt.Sprintf("flow[%d] %s as %s: expected case %s, got %s",
			index, step.Invoke, step.As, step.Expect.Case, outputCase)
	}
	if step.Expect.Result == nil {
		return ""
	}

	expected, err := normalizeMap(step.Expect.Result)
	if err != nil {
		return fmt.Sprintf("flow[%d]: invalid expected result: %v", index, err)
	}
	if !matchSubset(actual, expected) {
		return fmt.Sprintf("flow[%d] %s as %s: expected result %v, got %v",
			index, step.Invoke, step.As, expected, actual)
	}
	return ""
}

func argString(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func domainDetails(err error) map[string]string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}

// normalize converts v to the shape encoding/json decodes into: maps of
// string to any, []any, float64, string, bool. YAML-parsed expectations and
// engine results then compare with reflect.DeepEqual.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeMap(m map[string]any) (map[string]any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	v, err := normalize(m)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// matchSubset reports whether every key of expected is present in actual with
// an equal value.
func matchSubset(actual any, expected map[string]any) bool {
	actualMap, ok := actual.(map[string]any)
	if !ok {
		return len(expected) == 0
	}
	for key, want := range expected {
		got, ok := actualMap[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
