package xapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// twitterTimeLayout is the legacy created_at timestamp format.
const twitterTimeLayout = "Mon Jan 02 15:04:05 +0000 2006"

// Tweet is a single tweet, flattened from its raw GraphQL node.
type Tweet struct {
	ID        string
	AuthorID  string
	Text      string
	CreatedAt time.Time
	Replies   int
	Likes     int
	Retweets  int
	Quotes    int
	Views     int
}

// UnmarshalJSON decodes a raw "Tweet" node. Fields the node lacks stay at
// their zero value; the conversion never fails on an incomplete node.
func (t *Tweet) UnmarshalJSON(data []byte) error {
	var raw struct {
		RestID string `json:"rest_id"`
		Legacy struct {
			FullText      string `json:"full_text"`
			CreatedAt     string `json:"created_at"`
			ReplyCount    int    `json:"reply_count"`
			FavoriteCount int    `json:"favorite_count"`
			RetweetCount  int    `json:"retweet_count"`
			QuoteCount    int    `json:"quote_count"`
			UserIDStr     string `json:"user_id_str"`
		} `json:"legacy"`
		Views struct {
			Count string `json:"count"`
		} `json:"views"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.ID = raw.RestID
	t.AuthorID = raw.Legacy.UserIDStr
	t.Text = raw.Legacy.FullText
	t.Replies = raw.Legacy.ReplyCount
	t.Likes = raw.Legacy.FavoriteCount
	t.Retweets = raw.Legacy.RetweetCount
	t.Quotes = raw.Legacy.QuoteCount
	if raw.Legacy.CreatedAt != "" {
		if ts, err := time.Parse(twitterTimeLayout, raw.Legacy.CreatedAt); err == nil {
			t.CreatedAt = ts
		}
	}
	if raw.Views.Count != "" {
		t.Views, _ = strconv.Atoi(raw.Views.Count)
	}
	return nil
}

// User is a user profile, flattened from its raw GraphQL node.
type User struct {
	ID          string
	Handle      string
	DisplayName string
	Bio         string
	Followers   int
	Following   int
	TweetCount  int
	CreatedAt   time.Time
	IsVerified  bool
}

// UnmarshalJSON decodes a raw "User" node, same pass-through rules as Tweet.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		RestID string `json:"rest_id"`
		Legacy struct {
			Name           string `json:"name"`
			ScreenName     string `json:"screen_name"`
			Description    string `json:"description"`
			FollowersCount int    `json:"followers_count"`
			FriendsCount   int    `json:"friends_count"`
			StatusesCount  int    `json:"statuses_count"`
			CreatedAt      string `json:"created_at"`
			Verified       bool   `json:"verified"`
		} `json:"legacy"`
		IsBlueVerified bool `json:"is_blue_verified"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.ID = raw.RestID
	u.Handle = raw.Legacy.ScreenName
	u.DisplayName = raw.Legacy.Name
	u.Bio = strings.TrimSpace(raw.Legacy.Description)
	u.Followers = raw.Legacy.FollowersCount
	u.Following = raw.Legacy.FriendsCount
	u.TweetCount = raw.Legacy.StatusesCount
	u.IsVerified = raw.Legacy.Verified || raw.IsBlueVerified
	if raw.Legacy.CreatedAt != "" {
		if ts, err := time.Parse(twitterTimeLayout, raw.Legacy.CreatedAt); err == nil {
			u.CreatedAt = ts
		}
	}
	return nil
}

// CursoredData is one page of a listing plus the cursor to the next page.
// List preserves the order entities were discovered in the response; Next is
// empty when the listing has no further page.
type CursoredData[T any] struct {
	List []T
	Next string
}

// HasMore reports whether another page can be requested.
func (d CursoredData[T]) HasMore() bool { return d.Next != "" }
