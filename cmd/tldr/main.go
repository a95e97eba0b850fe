// Package main is the entry point for the tldr CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dbrgn/tealdeer/cmd/tldr/commands"
	tldrerrors "github.com/dbrgn/tealdeer/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)

	var exitErr *tldrerrors.ExitError
	if tldrerrors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
	os.Exit(tldrerrors.ExitUser)
}
