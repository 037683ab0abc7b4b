package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var securityCmd = &cobra.Command{
	Use:   "security",
	Short: "Inspect and change the security policy",
	Long: `Manage the persisted security policy that validates command bodies
before expansion.

Levels:
  enforce  dangerous patterns block expansion (default)
  warn     dangerous patterns log a warning but expansion proceeds
  off      no validation

Examples:
  promptcmd security status
  promptcmd security warn
  promptcmd security exempt add "git push --force"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var securityStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current security policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		status, err := svc.SecurityStatus()
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}

var securityEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Set the security level to enforce",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.EnableSecurity(); err != nil {
			return err
		}
		color.Green("Security validation enforced")
		return nil
	},
}

var securityWarnCmd = &cobra.Command{
	Use:   "warn",
	Short: "Set the security level to warn",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.SetSecurityWarn(); err != nil {
			return err
		}
		color.Yellow("Security validation set to warn only")
		return nil
	},
}

var securityDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Turn security validation off",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.DisableSecurity(); err != nil {
			return err
		}
		color.Red("Security validation disabled")
		return nil
	},
}

var securityExemptCmd = &cobra.Command{
	Use:   "exempt",
	Short: "Manage pattern exemptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var securityExemptAddCmd = &cobra.Command{
	Use:   "add <pattern>",
	Short: "Exempt a pattern from validation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.AddExemption(args[0]); err != nil {
			return err
		}
		fmt.Printf("Exempted: %s\n", args[0])
		return nil
	},
}

var securityExemptRemoveCmd = &cobra.Command{
	Use:   "remove <pattern>",
	Short: "Remove a pattern exemption",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.RemoveExemption(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed exemption: %s\n", args[0])
		return nil
	},
}

func init() {
	securityExemptCmd.AddCommand(securityExemptAddCmd)
	securityExemptCmd.AddCommand(securityExemptRemoveCmd)

	securityCmd.AddCommand(securityStatusCmd)
	securityCmd.AddCommand(securityEnableCmd)
	securityCmd.AddCommand(securityWarnCmd)
	securityCmd.AddCommand(securityDisableCmd)
	securityCmd.AddCommand(securityExemptCmd)
}
