package harness

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// SuiteResult summarizes a directory of scenarios.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Scenarios      []ScenarioReport  `json:"scenarios"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioReport is the outcome of one scenario file, in run order.
// Name falls back to the file name when the scenario could not be loaded.
type ScenarioReport struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// ScenarioFailure represents a scenario that could not load, run or pass.
type ScenarioFailure struct {
	ScenarioPath string `json:"scenario_path"`
	Error        string `json:"error"`
}

// RunDir loads and runs every *.yaml scenario in dir, in name order.
// Group paths resolve relative to dir.
func RunDir(dir string) (*SuiteResult, error) {
	return RunDirMatching(dir, "")
}

// RunDirMatching is RunDir restricted to scenario files whose name, without
// the .yaml extension, matches the filepath.Match pattern. An empty pattern
// matches everything.
func RunDirMatching(dir, pattern string) (*SuiteResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	result := &SuiteResult{Scenarios: []ScenarioReport{}}
	for _, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), ".yaml")
		if pattern != "" {
			matched, err := filepath.Match(pattern, base)
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				continue
			}
		}

		report := runFile(path, base)
		result.TotalScenarios++
		result.Scenarios = append(result.Scenarios, report)
		if report.Pass {
			result.Passed++
			continue
		}
		result.Failed++
		result.Failures = append(result.Failures, ScenarioFailure{
			ScenarioPath: path,
			Error:        strings.Join(report.Errors, "; "),
		})
	}

	return result, nil
}

func runFile(path, name string) ScenarioReport {
	report := ScenarioReport{Name: name, Path: path}

	scenario, err := LoadScenario(path)
	if err != nil {
		report.Errors = []string{fmt.Sprintf("failed to load scenario: %v", err)}
		return report
	}
	report.Name = scenario.Name

	runResult, err := Run(scenario)
	if err != nil {
		report.Errors = []string{fmt.Sprintf("scenario execution failed: %v", err)}
		return report
	}

	if !runResult.Pass {
		report.Errors = runResult.Errors
		return report
	}

	report.Pass = true
	return report
}
