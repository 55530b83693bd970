package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mrled/suns/titlesym/cmd/titlesym/commands"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var usageErr *commands.UsageError
	if errors.As(err, &usageErr) {
		os.Exit(64)
	}
	var exitErr *commands.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	os.Exit(1)
}
