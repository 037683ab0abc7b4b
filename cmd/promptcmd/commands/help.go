package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "show <command>",
	Short: "Show details for one custom command",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	detail, err := svc.Help(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Print(detail)
	return nil
}
