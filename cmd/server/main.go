// Package main implements the entry point for the Taskboard API server,
// a task tracker with a JSON HTTP API and a computed insights summary.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
