// Package main provides the entry point for the promptcmd CLI.
package main

import (
	"fmt"
	"os"

	"github.com/promptcmd-ai/promptcmd/cmd/promptcmd/commands"
)

// userFacing is implemented by errors that carry a display rendering
// distinct from their diagnostic form.
type userFacing interface {
	UserMessage() string
}

func main() {
	if err := commands.Execute(); err != nil {
		if uf, ok := err.(userFacing); ok {
			fmt.Fprintln(os.Stderr, uf.UserMessage())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
