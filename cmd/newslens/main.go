// Command newslens is a bias-aware news recommendation CLI.
//
// It retrieves candidate articles for a user's stated interests, scores
// each on relevance and estimated political bias, and prints a ranked,
// bias-annotated list.
package main

import (
	"fmt"
	"os"

	"github.com/ebrowne/newslens/internal/logging"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "newslens: logging init: %v\n", err)
	}
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
