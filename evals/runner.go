// Package evals provides an evaluation framework for MCP tool selection
// accuracy. It validates that LLMs pick the right wiki bridge tool and
// extract proper arguments from natural language inputs.
package evals

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// ToolSelectionTest represents a single tool selection evaluation case
type ToolSelectionTest struct {
	ID           string                 `json:"id"`
	Category     string                 `json:"category"`
	Input        string                 `json:"input"`
	ExpectedTool string                 `json:"expected_tool"`
	ExpectedArgs map[string]interface{} `json:"expected_args"`
	NotTools     []string               `json:"not_tools"`
}

// ToolSelectionSuite contains all tool selection tests
type ToolSelectionSuite struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Tests       []ToolSelectionTest `json:"tests"`
}

// ConfusionPairTest represents a single disambiguation test
type ConfusionPairTest struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Reason   string `json:"reason"`
}

// ConfusionPair represents a pair of tools that are commonly confused
type ConfusionPair struct {
	ID             string              `json:"id"`
	Tools          []string            `json:"tools"`
	Disambiguation string              `json:"disambiguation"`
	Tests          []ConfusionPairTest `json:"tests"`
}

// ConfusionPairSuite contains all confusion pair tests
type ConfusionPairSuite struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Pairs       []ConfusionPair `json:"pairs"`
}

// EvalMetrics contains aggregate metrics for an evaluation run
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64 // PassedTests / TotalTests
	ByCategory    map[string]*CategoryMetrics
	FailedDetails []string
}

// CategoryMetrics contains metrics per category
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// ToolSelectionResult represents the result of a single evaluation
type ToolSelectionResult struct {
	TestID       string
	Input        string
	ExpectedTool string
	ActualTool   string
	Passed       bool
	Errors       []string
}

// LoadToolSelectionSuite loads tool selection tests from a JSON file
func LoadToolSelectionSuite(path string) (*ToolSelectionSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var suite ToolSelectionSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return &suite, nil
}

// LoadConfusionPairSuite loads confusion pair tests from a JSON file
func LoadConfusionPairSuite(path string) (*ConfusionPairSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var suite ConfusionPairSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return &suite, nil
}

// ToolSelector is an interface that an LLM or mock can implement for testing
type ToolSelector interface {
	// SelectTool returns the tool name and arguments for a given natural language input
	SelectTool(input string) (toolName string, args map[string]interface{}, err error)
}

// EvaluateToolSelection runs tool selection tests against a selector
func EvaluateToolSelection(suite *ToolSelectionSuite, selector ToolSelector) (*EvalMetrics, []ToolSelectionResult) {
	metrics := &EvalMetrics{ByCategory: make(map[string]*CategoryMetrics)}
	var results []ToolSelectionResult

	for _, test := range suite.Tests {
		metrics.TotalTests++
		if metrics.ByCategory[test.Category] == nil {
			metrics.ByCategory[test.Category] = &CategoryMetrics{}
		}
		metrics.ByCategory[test.Category].Total++

		actualTool, actualArgs, err := selector.SelectTool(test.Input)

		result := ToolSelectionResult{
			TestID:       test.ID,
			Input:        test.Input,
			ExpectedTool: test.ExpectedTool,
			ActualTool:   actualTool,
			Passed:       true,
		}

		if err != nil {
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("selector error: %v", err))
		}

		if actualTool != test.ExpectedTool {
			result.Passed = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("wrong tool: expected %s, got %s", test.ExpectedTool, actualTool))
		}

		for _, forbidden := range test.NotTools {
			if actualTool == forbidden {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("selected forbidden tool: %s", forbidden))
			}
		}

		for key, expectedValue := range test.ExpectedArgs {
			actualValue, exists := actualArgs[key]
			if !exists {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("missing arg %s (expected %v)", key, expectedValue))
			} else if !compareValues(expectedValue, actualValue) {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("wrong arg %s: expected %v, got %v", key, expectedValue, actualValue))
			}
		}

		if result.Passed {
			metrics.PassedTests++
			metrics.ByCategory[test.Category].Passed++
		} else {
			metrics.FailedTests++
			metrics.ByCategory[test.Category].Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: %s", test.ID, test.Input, strings.Join(result.Errors, "; ")))
		}

		results = append(results, result)
	}

	if metrics.TotalTests > 0 {
		metrics.Accuracy = float64(metrics.PassedTests) / float64(metrics.TotalTests)
	}

	return metrics, results
}

// EvaluateConfusionPairs runs disambiguation tests against a selector
func EvaluateConfusionPairs(suite *ConfusionPairSuite, selector ToolSelector) *EvalMetrics {
	metrics := &EvalMetrics{ByCategory: make(map[string]*CategoryMetrics)}

	for _, pair := range suite.Pairs {
		if metrics.ByCategory[pair.ID] == nil {
			metrics.ByCategory[pair.ID] = &CategoryMetrics{}
		}

		for _, test := range pair.Tests {
			metrics.TotalTests++
			metrics.ByCategory[pair.ID].Total++

			actualTool, _, err := selector.SelectTool(test.Input)
			if err == nil && actualTool == test.Expected {
				metrics.PassedTests++
				metrics.ByCategory[pair.ID].Passed++
				continue
			}

			metrics.FailedTests++
			metrics.ByCategory[pair.ID].Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %s: expected %s, got %s (%s)",
					pair.ID, test.Input, test.Expected, actualTool, test.Reason))
		}
	}

	if metrics.TotalTests > 0 {
		metrics.Accuracy = float64(metrics.PassedTests) / float64(metrics.TotalTests)
	}

	return metrics
}

// compareValues compares expected and actual values, handling the numeric
// type differences JSON introduces (numbers unmarshal to float64).
func compareValues(expected, actual interface{}) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}

	ev := reflect.ValueOf(expected)
	av := reflect.ValueOf(actual)

	switch ev.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if av.Kind() == reflect.Float64 {
			return float64(ev.Int()) == av.Float()
		}
	case reflect.Float32, reflect.Float64:
		if av.Kind() == reflect.Float64 {
			return ev.Float() == av.Float()
		}
	}

	return reflect.DeepEqual(expected, actual)
}

// FormatMetrics returns a human-readable summary of evaluation metrics
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("\n=== %s ===\n", suiteName))
	b.WriteString(fmt.Sprintf("Total: %d tests\n", metrics.TotalTests))
	b.WriteString(fmt.Sprintf("Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100))
	b.WriteString(fmt.Sprintf("Failed: %d\n", metrics.FailedTests))

	if len(metrics.ByCategory) > 0 {
		b.WriteString("\nBy Category:\n")
		for cat, m := range metrics.ByCategory {
			if m.Total > 0 {
				acc := float64(m.Passed) / float64(m.Total) * 100
				b.WriteString(fmt.Sprintf("  %-25s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, acc))
			}
		}
	}

	if len(metrics.FailedDetails) > 0 {
		b.WriteString("\nFailed Tests:\n")
		for _, detail := range metrics.FailedDetails {
			b.WriteString(fmt.Sprintf("  - %s\n", detail))
		}
	}

	return b.String()
}
