package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUserCommand creates the user lookup command.
func NewUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "user HANDLE",
		Short: "Look up a user profile by handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			page, err := client.UserDetails(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("user lookup: %w", err)
			}
			renderUsers(page)
			return nil
		},
	}
}

// NewFollowersCommand creates the followers listing command.
func NewFollowersCommand() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:   "followers USER_ID",
		Short: "List the followers of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			page, err := client.Followers(cmd.Context(), args[0], viper.GetInt("count"), cursor)
			if err != nil {
				return fmt.Errorf("followers: %w", err)
			}
			renderUsers(page)
			return nil
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from a previous page")
	return cmd
}

// NewFollowingCommand creates the following listing command.
func NewFollowingCommand() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:   "following USER_ID",
		Short: "List the accounts a user follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			page, err := client.Following(cmd.Context(), args[0], viper.GetInt("count"), cursor)
			if err != nil {
				return fmt.Errorf("following: %w", err)
			}
			renderUsers(page)
			return nil
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from a previous page")
	return cmd
}
