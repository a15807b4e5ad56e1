package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/giftcycle/internal/sampler"
)

// Scenario defines an end-to-end scenario: one group, a flow of operations
// and assertions on the result.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Group is the path of the group file (YAML or CUE) to seed.
	Group string `yaml:"group"`

	// Rand scripts the sampler's random values. Takes precedence over Seed.
	Rand []int `yaml:"rand,omitempty"`

	// Seed seeds a PCG source when Rand is empty. Zero means seed 1.
	Seed uint64 `yaml:"seed,omitempty"`

	// Strategy selects the sampler strategy. Empty means retry.
	Strategy string `yaml:"strategy,omitempty"`

	// Flow is the sequence of operations to run.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final trace and state.
	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep is one operation invoked by a requester.
type FlowStep struct {
	// Invoke is the operation name, e.g. "draw" or "exclude.add".
	Invoke string `yaml:"invoke"`

	// As is the requester's user id.
	As string `yaml:"as"`

	// Args are the operation arguments.
	Args map[string]any `yaml:"args,omitempty"`

	// Expect specifies the expected outcome. If nil, any outcome is accepted.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected step outcome.
type ExpectClause struct {
	// Case is "ok" or a domain error code such as "UNAUTHORIZED".
	Case string `yaml:"case"`

	// Result is a subset match on the step result. For errors the result is
	// the error details.
	Result map[string]any `yaml:"result,omitempty"`
}

// Assertion validates the trace or the final stored state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Action is the operation name (trace_contains, trace_count).
	Action string `yaml:"action,omitempty"`

	// Args are matched as a subset (trace_contains).
	Args map[string]any `yaml:"args,omitempty"`

	// Case restricts matches to invocations with this outcome (trace_contains, trace_count).
	Case string `yaml:"case,omitempty"`

	// Count is the expected number of matching invocations (trace_count).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected invocation order (trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Expect holds expected state fields (final_state): status, participants,
	// exclusions, assigned.
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
	AssertSingleCycle   = "single_cycle"
)

// Operation names.
const (
	OpDraw          = "draw"
	OpReveal        = "reveal"
	OpExcludeAdd    = "exclude.add"
	OpExcludeRemove = "exclude.remove"
	OpExcludeList   = "exclude.list"
)

var operations = []string{OpDraw, OpReveal, OpExcludeAdd, OpExcludeRemove, OpExcludeList}

var finalStateFields = []string{"status", "participants", "exclusions", "assigned"}

// LoadScenario reads and parses a scenario YAML file. The group path is
// resolved relative to the scenario file.
//
// Returns an error if the file doesn't exist, is malformed, contains unknown
// fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file, resolving
// the group path relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the group path BEFORE validation
	if scenario.Group != "" && !filepath.IsAbs(scenario.Group) && basePath != "" {
		scenario.Group = filepath.Join(basePath, scenario.Group)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Group == "" {
		return fmt.Errorf("group is required")
	}
	if _, err := os.Stat(s.Group); os.IsNotExist(err) {
		return fmt.Errorf("group file not found: %s", s.Group)
	}

	switch sampler.Strategy(s.Strategy) {
	case "", sampler.StrategyRetry, sampler.StrategyBacktrack:
	default:
		return fmt.Errorf("unknown strategy %q", s.Strategy)
	}

	for i, v := range s.Rand {
		if v < 0 {
			return fmt.Errorf("rand[%d]: must be non-negative, got %d", i, v)
		}
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if !slices.Contains(operations, step.Invoke) {
			return fmt.Errorf("flow[%d]: unknown operation %q", i, step.Invoke)
		}
		if step.As == "" {
			return fmt.Errorf("flow[%d]: as is required", i)
		}
		if step.Expect != nil && step.Expect.Case == "" {
			return fmt.Errorf("flow[%d].expect: case is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
		for field := range a.Expect {
			if !slices.Contains(finalStateFields, field) {
				return fmt.Errorf("assertions[%d]: unknown final_state field %q", index, field)
			}
		}
	case AssertSingleCycle:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
