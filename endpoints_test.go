package xapi

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEndpointURL(t *testing.T) {
	ep := Endpoints[UserDetails]
	url := ep.URL()
	if !strings.HasPrefix(url, graphqlBase+"/") {
		t.Fatalf("unexpected base: %s", url)
	}
	if !strings.HasSuffix(url, "/"+ep.ID+"/UserByScreenName") {
		t.Fatalf("unexpected path: %s", url)
	}
}

func TestBuildRequestReadKinds(t *testing.T) {
	req, err := buildRequest(TweetSearch, Args{Query: "from:someone", Count: 50, Cursor: "CUR"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Method != "GET" {
		t.Fatalf("method = %s, want GET", req.Method)
	}
	if req.Kind != TweetSearch {
		t.Fatalf("kind = %s", req.Kind)
	}
	if len(req.Payload) != 0 {
		t.Fatal("read kinds carry no payload")
	}
	for _, want := range []string{"variables=", "features=", "rawQuery", "CUR"} {
		if !strings.Contains(req.URL, want) {
			t.Fatalf("URL missing %q: %s", want, req.URL)
		}
	}
}

func TestBuildRequestWriteKinds(t *testing.T) {
	req, err := buildRequest(TweetCreate, Args{Text: "a new tweet"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Method != "POST" {
		t.Fatalf("method = %s, want POST", req.Method)
	}

	var payload struct {
		QueryID   string         `json:"queryId"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.QueryID != Endpoints[TweetCreate].ID {
		t.Fatalf("queryId = %s", payload.QueryID)
	}
	if payload.Variables["tweet_text"] != "a new tweet" {
		t.Fatalf("variables = %v", payload.Variables)
	}
}

func TestBuildRequestValidation(t *testing.T) {
	tests := []struct {
		kind ResourceKind
		args Args
	}{
		{TweetDetails, Args{}},
		{TweetSearch, Args{}},
		{UserLikes, Args{}},
		{UserDetails, Args{}},
		{UserFollowers, Args{}},
		{UserFollowing, Args{}},
		{TweetRetweeters, Args{}},
		{TweetCreate, Args{}},
		{TweetLike, Args{}},
		{TweetRetweet, Args{}},
		{ResourceKind("NoSuchThing"), Args{ID: "1"}},
	}

	for _, tt := range tests {
		if _, err := buildRequest(tt.kind, tt.args); err == nil {
			t.Fatalf("buildRequest(%s, %+v) should fail", tt.kind, tt.args)
		}
	}
}

func TestBuildRequestEveryKindHasAnEndpoint(t *testing.T) {
	args := map[ResourceKind]Args{
		TweetDetails:    {ID: "1"},
		TweetSearch:     {Query: "q"},
		UserLikes:       {ID: "1"},
		UserDetails:     {Handle: "h"},
		UserFollowers:   {ID: "1"},
		UserFollowing:   {ID: "1"},
		TweetRetweeters: {ID: "1"},
		TweetCreate:     {Text: "t"},
		TweetLike:       {ID: "1"},
		TweetRetweet:    {ID: "1"},
	}
	for kind := range Endpoints {
		if _, err := buildRequest(kind, args[kind]); err != nil {
			t.Fatalf("buildRequest(%s): %v", kind, err)
		}
	}
}

func TestJSONEscape(t *testing.T) {
	got := jsonEscape([]byte(`{"a":["b c"]}`))
	want := `%7B%22a%22%3A%5B%22b%20c%22%5D%7D`
	if got != want {
		t.Fatalf("jsonEscape = %s, want %s", got, want)
	}
}
