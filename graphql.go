package xapi

import "context"

// TweetDetails fetches a tweet and its reply thread.
func (c *Client) TweetDetails(ctx context.Context, tweetID string) (*CursoredData[Tweet], error) {
	return fetchList[Tweet](ctx, c, TweetDetails, Args{ID: tweetID})
}

// SearchTweets searches recent tweets matching a raw query. Pass the cursor
// from a previous page to continue the listing.
func (c *Client) SearchTweets(ctx context.Context, query string, count int, cursor string) (*CursoredData[Tweet], error) {
	return fetchList[Tweet](ctx, c, TweetSearch, Args{Query: query, Count: count, Cursor: cursor})
}

// UserLikes fetches tweets a user has liked.
func (c *Client) UserLikes(ctx context.Context, userID string, count int, cursor string) (*CursoredData[Tweet], error) {
	return fetchList[Tweet](ctx, c, UserLikes, Args{ID: userID, Count: count, Cursor: cursor})
}

// UserDetails fetches a user profile by handle. The page holds at most one
// entry.
func (c *Client) UserDetails(ctx context.Context, handle string) (*CursoredData[User], error) {
	return fetchList[User](ctx, c, UserDetails, Args{Handle: handle})
}

// Followers fetches the followers of a user.
func (c *Client) Followers(ctx context.Context, userID string, count int, cursor string) (*CursoredData[User], error) {
	return fetchList[User](ctx, c, UserFollowers, Args{ID: userID, Count: count, Cursor: cursor})
}

// Following fetches the accounts a user follows.
func (c *Client) Following(ctx context.Context, userID string, count int, cursor string) (*CursoredData[User], error) {
	return fetchList[User](ctx, c, UserFollowing, Args{ID: userID, Count: count, Cursor: cursor})
}

// Retweeters fetches the users who retweeted a tweet.
func (c *Client) Retweeters(ctx context.Context, tweetID string, count int, cursor string) (*CursoredData[User], error) {
	return fetchList[User](ctx, c, TweetRetweeters, Args{ID: tweetID, Count: count, Cursor: cursor})
}

// CreateTweet posts a new tweet. The returned flag reflects the response
// body, not just the HTTP status.
func (c *Client) CreateTweet(ctx context.Context, text string) (bool, error) {
	return c.postAction(ctx, TweetCreate, Args{Text: text})
}

// LikeTweet marks a tweet as liked.
func (c *Client) LikeTweet(ctx context.Context, tweetID string) (bool, error) {
	return c.postAction(ctx, TweetLike, Args{ID: tweetID})
}

// Retweet retweets a tweet.
func (c *Client) Retweet(ctx context.Context, tweetID string) (bool, error) {
	return c.postAction(ctx, TweetRetweet, Args{ID: tweetID})
}
