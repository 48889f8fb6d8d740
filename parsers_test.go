package xapi

import "testing"

func TestEntityTypeName(t *testing.T) {
	tweetKinds := []ResourceKind{TweetDetails, TweetSearch, UserLikes}
	for _, k := range tweetKinds {
		if got := entityTypeName(k); got != "Tweet" {
			t.Fatalf("entityTypeName(%s) = %q, want Tweet", k, got)
		}
	}

	userKinds := []ResourceKind{UserDetails, UserFollowers, UserFollowing, TweetRetweeters}
	for _, k := range userKinds {
		if got := entityTypeName(k); got != "User" {
			t.Fatalf("entityTypeName(%s) = %q, want User", k, got)
		}
	}
}

func TestNormalizeTweetTimeline(t *testing.T) {
	body := `{
		"data": {
			"search_by_raw_query": {
				"search_timeline": {
					"timeline": {
						"instructions": [{
							"type": "TimelineAddEntries",
							"entries": [
								{
									"entryId": "tweet-123",
									"content": {
										"itemContent": {
											"tweet_results": {
												"result": {
													"__typename": "Tweet",
													"rest_id": "123",
													"legacy": {
														"full_text": "hello world",
														"created_at": "Mon Jan 02 15:04:05 +0000 2024",
														"favorite_count": 10,
														"retweet_count": 5,
														"quote_count": 2,
														"user_id_str": "999"
													},
													"views": {"count": "1000"}
												}
											}
										}
									}
								},
								{
									"entryId": "cursor-top-0",
									"content": {"cursorType": "Top", "value": "TOP_TOKEN"}
								},
								{
									"entryId": "cursor-bottom-0",
									"content": {"cursorType": "Bottom", "value": "BOTTOM_TOKEN"}
								}
							]
						}]
					}
				}
			}
		}
	}`

	page, err := normalize[Tweet]([]byte(body), TweetSearch)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.List) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(page.List))
	}

	tw := page.List[0]
	if tw.ID != "123" {
		t.Fatalf("expected ID 123, got %s", tw.ID)
	}
	if tw.AuthorID != "999" {
		t.Fatalf("expected author 999, got %s", tw.AuthorID)
	}
	if tw.Text != "hello world" {
		t.Fatalf("expected text, got %q", tw.Text)
	}
	if tw.Likes != 10 || tw.Retweets != 5 || tw.Quotes != 2 {
		t.Fatalf("unexpected counts: %+v", tw)
	}
	if tw.Views != 1000 {
		t.Fatalf("expected 1000 views, got %d", tw.Views)
	}

	if page.Next != "BOTTOM_TOKEN" {
		t.Fatalf("expected bottom cursor, got %q", page.Next)
	}
	if !page.HasMore() {
		t.Fatal("expected HasMore")
	}
}

func TestNormalizeUserListing(t *testing.T) {
	body := `{
		"data": {"user": {"result": {"timeline": {"timeline": {"instructions": [{
			"entries": [
				{"content": {"itemContent": {"user_results": {"result": {
					"__typename": "User",
					"rest_id": "42",
					"legacy": {"screen_name": "first", "followers_count": 5}
				}}}}},
				{"content": {"itemContent": {"user_results": {"result": {
					"__typename": "User",
					"rest_id": "43",
					"legacy": {"screen_name": "second"}
				}}}}},
				{"content": {"cursorType": "Bottom", "value": "NEXT"}},
				{"content": {"cursorType": "Bottom", "value": "IGNORED"}}
			]
		}]}}}}}
	}`

	page, err := normalize[User]([]byte(body), UserFollowers)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.List) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page.List))
	}
	if page.List[0].Handle != "first" || page.List[1].Handle != "second" {
		t.Fatalf("unexpected order: %+v", page.List)
	}
	if page.Next != "NEXT" {
		t.Fatalf("later bottom cursors must be ignored, got %q", page.Next)
	}
}

func TestNormalizeNoMatchesIsEmptyPage(t *testing.T) {
	page, err := normalize[Tweet]([]byte(`{"data": {"something": "else"}}`), TweetSearch)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.List) != 0 {
		t.Fatalf("expected empty page, got %d entries", len(page.List))
	}
	if page.Next != "" {
		t.Fatalf("expected no cursor, got %q", page.Next)
	}
	if page.HasMore() {
		t.Fatal("empty page must not report more")
	}
}

func TestNormalizePassesThroughIncompleteNodes(t *testing.T) {
	// A node that matches the discriminator but lacks the expected fields
	// still lands in the page, with zero values.
	body := `{"items": [
		{"__typename": "Tweet"},
		{"__typename": "Tweet", "rest_id": "7", "legacy": {"full_text": "ok"}}
	]}`

	page, err := normalize[Tweet]([]byte(body), TweetDetails)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.List) != 2 {
		t.Fatalf("expected both nodes, got %d", len(page.List))
	}
	if page.List[0].ID != "" {
		t.Fatalf("incomplete node should decode to zero values, got %+v", page.List[0])
	}
	if page.List[1].ID != "7" || page.List[1].Text != "ok" {
		t.Fatalf("unexpected second entry: %+v", page.List[1])
	}
}

func TestNormalizeRejectsInvalidBody(t *testing.T) {
	if _, err := normalize[Tweet]([]byte(`not json`), TweetSearch); err == nil {
		t.Fatal("expected parse error")
	}
}
