package main

import (
	"fmt"
	"os"

	"github.com/teranos/visualgenome/cmd/vg/commands"
	"github.com/teranos/visualgenome/errors"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
