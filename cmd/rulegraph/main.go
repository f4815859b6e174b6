// Package main provides the RuleGraph CLI application
package main

import (
	"fmt"
	"os"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("RuleGraph %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}

	fmt.Println("🧩 RuleGraph - Condition-Graph Editing Engine for Workflow Triggers")
	fmt.Println("Import github.com/rulegraph/rulegraph/pkg/session to embed the editor engine")
	fmt.Println("Run 'make help' to see available commands")
}
