// Command actiontree applies a declarative list of edits to one or more
// files through the hierarchical action-tree rewriter in internal/rewrite.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // .env is optional; environment wins if already set

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
