package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <command> [args...]",
	Short: "Show what expanding a command would do, without side effects",
	Long: `Preview a custom command: argument substitution is applied, but no
shell snippet runs and no file is read. Shows the snippets and file
references that a real expansion would resolve, plus any security findings.

Examples:
  promptcmd preview deploy staging`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	preview, err := svc.Preview(context.Background(), args[0], args[1:])
	if err != nil {
		return err
	}

	if len(preview.Findings) > 0 {
		color.Yellow("Security findings present; a real expansion may be blocked.")
	}
	fmt.Println(preview)
	return nil
}
