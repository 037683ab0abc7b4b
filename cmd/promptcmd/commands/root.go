// Package commands provides the CLI commands for promptcmd.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptcmd-ai/promptcmd/internal/config"
	"github.com/promptcmd-ai/promptcmd/internal/logging"
	"github.com/promptcmd-ai/promptcmd/internal/service"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	logLevel string
	workDir  string
)

var rootCmd = &cobra.Command{
	Use:   "promptcmd",
	Short: "promptcmd - custom slash commands for chat sessions",
	Long: `promptcmd discovers markdown command templates in .promptcmd/commands
(project scope) and in the user config directory (global scope), and expands
them into finished prompt text: argument substitution, inline shell snippet
execution, and file-content inlining, all under a persisted security policy.`,
	Version: Version,
	// Errors are rendered by main via UserMessage when available.
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "directory", "C", "", "Working directory (default: current)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("promptcmd %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(securityCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newService builds a service for the selected working directory, with
// settings loaded and logging configured.
func newService() (*service.Service, error) {
	dir := workDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	settings, err := config.LoadSettings(dir)
	if err != nil {
		return nil, err
	}

	level := settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logging.Init(logging.Config{Level: logging.ParseLevel(level), Output: os.Stderr, Pretty: true})

	return service.New(dir, settings), nil
}
