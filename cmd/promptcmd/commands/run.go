package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <command> [args...]",
	Short: "Expand a custom command and print the result",
	Long: `Expand the named custom command with the given arguments and print
the finished prompt text to stdout. Inline shell snippets execute and file
references are inlined during expansion.

Examples:
  promptcmd run deploy staging
  promptcmd run code-review src/main.go`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

func runExpand(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	expanded, err := svc.Expand(context.Background(), args[0], args[1:])
	if err != nil {
		return err
	}

	fmt.Println(expanded)
	return nil
}
