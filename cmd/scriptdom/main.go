// Command scriptdom loads an HTML page into a live dom tree, runs its inline
// scripts and event handlers, and prints the resulting tree.
package main

import (
	"fmt"
	"os"
)

// version is the release of the scriptdom binary.
const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
