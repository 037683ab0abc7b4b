package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listNamespace string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered custom commands",
	Long: `List all custom commands discovered in the project and global
command directories. Project commands shadow global commands with the
same name.

Examples:
  promptcmd list
  promptcmd list --namespace git`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listNamespace, "namespace", "", "Only show commands in this namespace")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	summaries, err := svc.List(context.Background())
	if err != nil {
		return err
	}

	if listNamespace != "" {
		filtered := summaries[:0]
		for _, summary := range summaries {
			if summary.Namespace == listNamespace {
				filtered = append(filtered, summary)
			}
		}
		summaries = filtered
	}

	if len(summaries) == 0 {
		fmt.Println("No custom commands found.")
		fmt.Println()
		fmt.Println("Create one with: promptcmd init")
		return nil
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, summary := range summaries {
		name := bold.Sprintf("/%s", summary.Name)
		hint := summary.ArgumentHint
		scope := dim.Sprintf("[%s]", summary.Scope)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, hint, scope, summary.Description)
	}
	return w.Flush()
}
