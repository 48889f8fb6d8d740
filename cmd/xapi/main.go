package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apidae-labs/go-xapi/cmd/xapi/commands"
)

var rootCmd = &cobra.Command{
	Use:   "xapi",
	Short: "X/Twitter internal API CLI",
	Long: `A command-line interface for the X/Twitter internal GraphQL API.

Reads run against an authenticated session when auth-token and ct0 are
configured, falling back to a guest token otherwise. Writes always need an
authenticated session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.xapi/config.yml)")
	rootCmd.PersistentFlags().String("auth-token", "", "auth_token session cookie")
	rootCmd.PersistentFlags().String("ct0", "", "ct0 CSRF token")
	rootCmd.PersistentFlags().String("proxy", "", "proxy URL for outbound requests")
	rootCmd.PersistentFlags().IntP("count", "n", 20, "page size for listings")

	viper.BindPFlag("auth-token", rootCmd.PersistentFlags().Lookup("auth-token"))
	viper.BindPFlag("ct0", rootCmd.PersistentFlags().Lookup("ct0"))
	viper.BindPFlag("proxy", rootCmd.PersistentFlags().Lookup("proxy"))
	viper.BindPFlag("count", rootCmd.PersistentFlags().Lookup("count"))

	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewFollowersCommand())
	rootCmd.AddCommand(commands.NewFollowingCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewLikesCommand())
	rootCmd.AddCommand(commands.NewTweetCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(filepath.Join(home, ".xapi"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("XAPI")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
