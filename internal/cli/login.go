package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aerostackdev/cli/internal/branding"
	"github.com/aerostackdev/cli/internal/config"
)

var loginRegistry string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the community registry",
	Long: `Sign in to the registry and store the session token in the user config
file. Existing settings in that file are kept.`,
	Example: `  aerostack login
  aerostack login --registry=https://api.mystack.dev/api`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginRegistry, "registry", "", "Registry base URL")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	heading(out, branding.DisplayName()+" Login")

	client := registryClient(loginRegistry)
	fmt.Fprintf(out, "  Connecting to %s\n\n", accent.Sprint(client.BaseURL()))

	email, err := deps.prompter.Input("Email:", "", validEmail)
	if err != nil {
		return err
	}
	password, err := deps.prompter.Password("Password:", func(v string) error {
		if v == "" {
			return fmt.Errorf("password required")
		}
		return nil
	})
	if err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	token, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	_, err = deps.config.Update(func(c *config.AuthConfig) {
		c.Token = token
		c.Email = email
		c.Registry = client.BaseURL()
	})
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	printOK(out, "Logged in as %s", accent.Sprint(email))
	muted.Fprintf(out, "\n  Token saved to %s\n\n", deps.config.Path())
	fmt.Fprintf(out, "  You can now publish functions: %s\n\n", accent.Sprintf("%s publish", branding.CLIName()))
	return nil
}

func validEmail(v string) error {
	if !strings.Contains(v, "@") {
		return fmt.Errorf("enter a valid email")
	}
	return nil
}
