// Package main provides the todos CLI: the HTTP server, the terminal client,
// and scriptable item commands.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error returned by a command to a process exit code.
// Errors without an explicit code are usage errors from cobra.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cmdError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
