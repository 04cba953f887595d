package main

import (
	"fmt"
	"os"

	"github.com/jarvis-assistant-bys/expense-tracker/cmd/expense-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
