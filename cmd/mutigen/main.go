package main

import (
	"fmt"
	"os"

	"github.com/teranos/mutigen/cmd/mutigen/commands"
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/logger"
)

func main() {
	err := commands.NewRootCmd().Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
