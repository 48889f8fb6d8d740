package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSearchCommand creates the tweet search command.
func NewSearchCommand() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search recent tweets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			page, err := client.SearchTweets(cmd.Context(), strings.Join(args, " "), viper.GetInt("count"), cursor)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			renderTweets(page)
			return nil
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from a previous page")
	return cmd
}

// NewLikesCommand creates the user-likes listing command.
func NewLikesCommand() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:   "likes USER_ID",
		Short: "List tweets a user has liked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}
			page, err := client.UserLikes(cmd.Context(), args[0], viper.GetInt("count"), cursor)
			if err != nil {
				return fmt.Errorf("likes: %w", err)
			}
			renderTweets(page)
			return nil
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from a previous page")
	return cmd
}

// NewTweetCommand creates the tweet command group.
func NewTweetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweet",
		Short: "Read and write individual tweets",
	}
	cmd.AddCommand(newTweetDetailCommand())
	cmd.AddCommand(newTweetRetweetersCommand())
	cmd.AddCommand(newTweetPostCommand())
	cmd.AddCommand(newTweetLikeCommand())
	cmd.AddCommand(newTweetRetweetCommand())
	return cmd
}

func newTweetDetailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detail TWEET_ID",
		Short: "Show a tweet and its reply thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}
			page, err := client.TweetDetails(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("tweet detail: %w", err)
			}
			renderTweets(page)
			return nil
		},
	}
}

func newTweetRetweetersCommand() *cobra.Command {
	var cursor string

	cmd := &cobra.Command{
		Use:   "retweeters TWEET_ID",
		Short: "List users who retweeted a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}
			page, err := client.Retweeters(cmd.Context(), args[0], viper.GetInt("count"), cursor)
			if err != nil {
				return fmt.Errorf("retweeters: %w", err)
			}
			renderUsers(page)
			return nil
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from a previous page")
	return cmd
}

func newTweetPostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "post TEXT...",
		Short: "Post a new tweet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}
			ok, err := client.CreateTweet(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("post: %w", err)
			}
			if !ok {
				return fmt.Errorf("post: the API accepted the request but reported no result")
			}
			fmt.Println("Tweet posted")
			return nil
		},
	}
}

func newTweetLikeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "like TWEET_ID",
		Short: "Like a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}
			ok, err := client.LikeTweet(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("like: %w", err)
			}
			if !ok {
				return fmt.Errorf("like: the API accepted the request but reported no result")
			}
			fmt.Println("Tweet liked")
			return nil
		},
	}
}

func newTweetRetweetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retweet TWEET_ID",
		Short: "Retweet a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAuthedClient()
			if err != nil {
				return err
			}
			ok, err := client.Retweet(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("retweet: %w", err)
			}
			if !ok {
				return fmt.Errorf("retweet: the API accepted the request but reported no result")
			}
			fmt.Println("Retweeted")
			return nil
		},
	}
}
