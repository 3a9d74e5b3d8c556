// Command evals inspects the MCP tool selection evaluation suites.
//
// Usage:
//
//	go run ./cmd/evals -dir ./evals
//
// It loads the evaluation JSON files and reports test coverage per tool and
// category. For actual LLM evaluation, implement evals.ToolSelector and use
// EvaluateToolSelection / EvaluateConfusionPairs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nicolay-i/obsidian-bridge-gitlab-plugin/evals"
)

func main() {
	dir := flag.String("dir", "./evals", "Directory containing eval JSON files")
	verbose := flag.Bool("verbose", false, "Show detailed test information")
	flag.Parse()

	fmt.Println("GitLab Wiki Bridge - Evaluation Suites")
	fmt.Println("======================================")
	fmt.Println()

	selection, err := evals.LoadToolSelectionSuite(filepath.Join(*dir, "tool_selection.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tool selection suite: %v\n", err)
		os.Exit(1)
	}
	confusion, err := evals.LoadConfusionPairSuite(filepath.Join(*dir, "confusion_pairs.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading confusion pairs suite: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tool Selection Suite: %s (%d tests)\n", selection.Name, len(selection.Tests))

	categories := make(map[string]int)
	toolCoverage := make(map[string]int)
	for _, test := range selection.Tests {
		categories[test.Category]++
		toolCoverage[test.ExpectedTool]++
	}

	fmt.Println("\nTests by Category:")
	for cat, count := range categories {
		fmt.Printf("  %-12s: %d\n", cat, count)
	}
	fmt.Println("\nTests by Tool:")
	for tool, count := range toolCoverage {
		fmt.Printf("  %-32s: %d\n", tool, count)
	}

	confusionTests := 0
	for _, pair := range confusion.Pairs {
		confusionTests += len(pair.Tests)
	}
	fmt.Printf("\nConfusion Pairs Suite: %s (%d tests across %d pairs)\n",
		confusion.Name, confusionTests, len(confusion.Pairs))
	for _, pair := range confusion.Pairs {
		fmt.Printf("  %s: %v\n", pair.ID, pair.Tools)
		fmt.Printf("    Rule: %s\n", pair.Disambiguation)
		if *verbose {
			for _, test := range pair.Tests {
				fmt.Printf("    %q -> %s (%s)\n", test.Input, test.Expected, test.Reason)
			}
		}
	}

	if *verbose {
		fmt.Println("\nTool Selection Cases:")
		for _, test := range selection.Tests {
			fmt.Printf("  [%s] %s -> %s\n", test.ID, test.Input, test.ExpectedTool)
		}
	}
}
