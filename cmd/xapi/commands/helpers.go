package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"

	xapi "github.com/apidae-labs/go-xapi"
)

// newClient builds a client from the configured credentials, falling back
// to a guest token when no session cookie is configured.
func newClient(ctx context.Context) (*xapi.Client, error) {
	authToken := viper.GetString("auth-token")
	ct0 := viper.GetString("ct0")
	proxy := viper.GetString("proxy")

	var cred xapi.CredentialProvider
	if authToken != "" && ct0 != "" {
		cred = &xapi.CookieCredential{AuthToken: authToken, CT0: ct0}
	} else {
		gc, err := xapi.NewGuestCredential(ctx, proxy)
		if err != nil {
			return nil, fmt.Errorf("no session configured and guest token unavailable: %w", err)
		}
		cred = gc
	}

	return xapi.NewClient(xapi.Config{Credential: cred, Proxy: proxy})
}

// newAuthedClient is newClient but refuses to fall back to a guest token.
func newAuthedClient() (*xapi.Client, error) {
	authToken := viper.GetString("auth-token")
	ct0 := viper.GetString("ct0")
	if authToken == "" || ct0 == "" {
		return nil, fmt.Errorf("this command needs an authenticated session: set auth-token and ct0 (see 'xapi login')")
	}
	return xapi.NewClient(xapi.Config{
		Credential: &xapi.CookieCredential{AuthToken: authToken, CT0: ct0},
		Proxy:      viper.GetString("proxy"),
	})
}

func renderUsers(page *xapi.CursoredData[xapi.User]) {
	if len(page.List) == 0 {
		fmt.Println("No users found")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Handle", "Name", "Followers", "Following", "Tweets", "Verified")
	for _, u := range page.List {
		_ = table.Append(u.ID, "@"+u.Handle, u.DisplayName,
			strconv.Itoa(u.Followers), strconv.Itoa(u.Following),
			strconv.Itoa(u.TweetCount), strconv.FormatBool(u.IsVerified))
	}
	_ = table.Render()

	if page.HasMore() {
		fmt.Println("Next cursor:", page.Next)
	}
}

func renderTweets(page *xapi.CursoredData[xapi.Tweet]) {
	if len(page.List) == 0 {
		fmt.Println("No tweets found")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Author", "Text", "Likes", "Retweets", "Views", "Created")
	for _, t := range page.List {
		text := t.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		created := ""
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.Format("2006-01-02 15:04")
		}
		_ = table.Append(t.ID, t.AuthorID, text,
			strconv.Itoa(t.Likes), strconv.Itoa(t.Retweets),
			strconv.Itoa(t.Views), created)
	}
	_ = table.Render()

	if page.HasMore() {
		fmt.Println("Next cursor:", page.Next)
	}
}
