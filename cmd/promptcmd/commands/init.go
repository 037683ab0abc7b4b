package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project command directory with a sample command",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	dir, err := svc.InitProjectDir()
	if err != nil {
		return err
	}

	color.Green("Initialized %s", dir)
	fmt.Println("Edit sample-command.md or add your own .md files, then run: promptcmd list")
	return nil
}
