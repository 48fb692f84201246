// Package main provides mapcheck, a command-line tool that loads level files
// the way the game does and reports what each one contains or why it was
// rejected.
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
