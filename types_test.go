package xapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTweetFlattening(t *testing.T) {
	raw := `{
		"__typename": "Tweet",
		"rest_id": "555",
		"legacy": {
			"full_text": "some text",
			"created_at": "Mon Jan 02 15:04:05 +0000 2020",
			"reply_count": 1,
			"favorite_count": 2,
			"retweet_count": 3,
			"quote_count": 4,
			"user_id_str": "777"
		},
		"views": {"count": "9001"}
	}`

	var tw Tweet
	if err := json.Unmarshal([]byte(raw), &tw); err != nil {
		t.Fatal(err)
	}
	if tw.ID != "555" || tw.AuthorID != "777" || tw.Text != "some text" {
		t.Fatalf("tweet = %+v", tw)
	}
	if tw.Replies != 1 || tw.Likes != 2 || tw.Retweets != 3 || tw.Quotes != 4 {
		t.Fatalf("counts = %+v", tw)
	}
	if tw.Views != 9001 {
		t.Fatalf("views = %d", tw.Views)
	}
	want := time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC)
	if !tw.CreatedAt.Equal(want) {
		t.Fatalf("created at = %v", tw.CreatedAt)
	}
}

func TestUserFlattening(t *testing.T) {
	raw := `{
		"__typename": "User",
		"rest_id": "12345",
		"legacy": {
			"name": "Test User",
			"screen_name": "testuser",
			"description": "  hello  ",
			"followers_count": 100,
			"friends_count": 50,
			"statuses_count": 200,
			"created_at": "Mon Jan 02 15:04:05 +0000 2020",
			"verified": false
		},
		"is_blue_verified": true
	}`

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatal(err)
	}
	if u.ID != "12345" || u.Handle != "testuser" || u.DisplayName != "Test User" {
		t.Fatalf("user = %+v", u)
	}
	if u.Bio != "hello" {
		t.Fatalf("bio should be trimmed, got %q", u.Bio)
	}
	if u.Followers != 100 || u.Following != 50 || u.TweetCount != 200 {
		t.Fatalf("counts = %+v", u)
	}
	if !u.IsVerified {
		t.Fatal("blue verification counts as verified")
	}
}

func TestEntityZeroValuesOnBadTimestamps(t *testing.T) {
	var tw Tweet
	if err := json.Unmarshal([]byte(`{"legacy":{"created_at":"not a date"},"views":{"count":"NaN"}}`), &tw); err != nil {
		t.Fatal(err)
	}
	if !tw.CreatedAt.IsZero() || tw.Views != 0 {
		t.Fatalf("tweet = %+v", tw)
	}
}
