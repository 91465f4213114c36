package main

import (
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Evaluation completed
	ExitError   = 2 // Configuration or runtime error
)

// Low stability is a result, not a process failure: the only non-zero exit
// is a configuration or runtime error.
func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitError)
	}
}
