package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	xapi "github.com/apidae-labs/go-xapi"
	"github.com/apidae-labs/go-xapi/captcha"
)

// NewLoginCommand creates the login command. On success it prints the
// session cookie pair so it can be placed in the config file or environment.
func NewLoginCommand() *cobra.Command {
	var (
		password   string
		totpSecret string
		capKey     string
	)

	cmd := &cobra.Command{
		Use:   "login USERNAME",
		Short: "Log in and obtain a session cookie pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			cfg := xapi.LoginConfig{
				Username:   username,
				Password:   password,
				TOTPSecret: totpSecret,
				Proxy:      viper.GetString("proxy"),
			}
			if capKey != "" {
				cfg.CaptchaSolver = captcha.NewCapsolver(capKey)
			}

			cred, err := xapi.Login(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fmt.Println("Logged in. Add to ~/.xapi/config.yml or export as env:")
			fmt.Printf("auth-token: %s\n", cred.AuthToken)
			fmt.Printf("ct0: %s\n", cred.CT0)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&totpSecret, "totp-secret", "", "TOTP secret for accounts with 2FA")
	cmd.Flags().StringVar(&capKey, "capsolver-key", "", "Capsolver API key for CAPTCHA challenges")
	return cmd
}
