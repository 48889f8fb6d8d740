package xapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	graphqlBase = "https://x.com/i/api/graphql"
	restAPIBase = "https://api.twitter.com"
)

// BearerToken is the public web-app bearer token sent on every request.
const BearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

// ResourceKind names the category of data being requested or posted. Each
// kind is bound to one GraphQL operation and one entity shape.
type ResourceKind string

const (
	// Read kinds. TweetDetails, TweetSearch and UserLikes yield Tweet
	// entities; the remaining read kinds yield User entities.
	TweetDetails    ResourceKind = "TweetDetail"
	TweetSearch     ResourceKind = "SearchTimeline"
	UserLikes       ResourceKind = "Likes"
	UserDetails     ResourceKind = "UserByScreenName"
	UserFollowers   ResourceKind = "Followers"
	UserFollowing   ResourceKind = "Following"
	TweetRetweeters ResourceKind = "Retweeters"

	// Write kinds.
	TweetCreate  ResourceKind = "CreateTweet"
	TweetLike    ResourceKind = "FavoriteTweet"
	TweetRetweet ResourceKind = "CreateRetweet"
)

// Endpoint holds the GraphQL operation ID, name, and feature flags.
type Endpoint struct {
	ID       string
	Name     string
	Features map[string]any
}

// URL returns the full URL for this endpoint.
func (e Endpoint) URL() string {
	return fmt.Sprintf("%s/%s/%s", graphqlBase, e.ID, e.Name)
}

// Endpoints maps resource kinds to their current GraphQL operations.
var Endpoints = map[ResourceKind]Endpoint{
	TweetDetails:    {ID: "_8aYOgEDz35BrBcBal1-_w", Name: "TweetDetail", Features: gqlFeatures()},
	TweetSearch:     {ID: "AIdc203rPpK_k_2KWSdm7g", Name: "SearchTimeline", Features: gqlFeatures()},
	UserLikes:       {ID: "B8I_QCljDBVfin21TTWMqA", Name: "Likes", Features: gqlFeatures()},
	UserDetails:     {ID: "1VOOyvKkiI3FMmkeDNxM9A", Name: "UserByScreenName", Features: gqlFeatures()},
	UserFollowers:   {ID: "Elc_-qTARceHpztqhI9PQA", Name: "Followers", Features: gqlFeatures()},
	UserFollowing:   {ID: "C1qZ6bs-L3oc_TKSZyxkXQ", Name: "Following", Features: gqlFeatures()},
	TweetRetweeters: {ID: "i-CI8t2pJD15euZJErEDrg", Name: "Retweeters", Features: gqlFeatures()},
	TweetCreate:     {ID: "a1p9RWpkYKBjWv_I3WzS-A", Name: "CreateTweet", Features: gqlFeatures()},
	TweetLike:       {ID: "lI07N6Otwv1PhnEgXILM7A", Name: "FavoriteTweet", Features: nil},
	TweetRetweet:    {ID: "ojPdsZsimiJrUGLR1sjUtA", Name: "CreateRetweet", Features: nil},
}

// Args carries the resource-specific arguments for one call. Only the
// fields the requested kind needs are read.
type Args struct {
	ID     string // tweet or user rest_id
	Handle string // screen name, for UserDetails
	Query  string // raw search query
	Count  int    // page size, defaults to 20
	Cursor string // pagination cursor from a previous page
	Text   string // tweet text, for TweetCreate
}

// buildRequest assembles the immutable request descriptor for a kind. Read
// kinds become GETs with variables/features in the query string; write
// kinds become POSTs with a JSON {variables, queryId} payload.
func buildRequest(kind ResourceKind, args Args) (*Request, error) {
	ep, ok := Endpoints[kind]
	if !ok {
		return nil, fmt.Errorf("unknown resource kind: %s", kind)
	}
	count := args.Count
	if count <= 0 {
		count = 20
	}

	var variables map[string]any
	switch kind {
	case TweetDetails:
		if args.ID == "" {
			return nil, fmt.Errorf("%s: tweet id is required", kind)
		}
		variables = map[string]any{
			"focalTweetId":                           args.ID,
			"with_rux_injections":                    false,
			"withCommunity":                          true,
			"withQuickPromoteEligibilityTweetFields": true,
			"withVoice":                              true,
		}
	case TweetSearch:
		if args.Query == "" {
			return nil, fmt.Errorf("%s: query is required", kind)
		}
		variables = map[string]any{
			"rawQuery":    args.Query,
			"count":       count,
			"querySource": "typed_query",
			"product":     "Latest",
		}
	case UserLikes:
		if args.ID == "" {
			return nil, fmt.Errorf("%s: user id is required", kind)
		}
		variables = map[string]any{
			"userId":                 args.ID,
			"count":                  count,
			"includePromotedContent": false,
			"withClientEventToken":   false,
			"withVoice":              true,
		}
	case UserDetails:
		if args.Handle == "" {
			return nil, fmt.Errorf("%s: handle is required", kind)
		}
		variables = map[string]any{
			"screen_name":              args.Handle,
			"withSafetyModeUserFields": true,
		}
	case UserFollowers, UserFollowing:
		if args.ID == "" {
			return nil, fmt.Errorf("%s: user id is required", kind)
		}
		variables = map[string]any{
			"userId":                 args.ID,
			"count":                  count,
			"includePromotedContent": false,
		}
	case TweetRetweeters:
		if args.ID == "" {
			return nil, fmt.Errorf("%s: tweet id is required", kind)
		}
		variables = map[string]any{
			"tweetId":                args.ID,
			"count":                  count,
			"includePromotedContent": true,
		}

	case TweetCreate:
		if args.Text == "" {
			return nil, fmt.Errorf("%s: tweet text is required", kind)
		}
		variables = map[string]any{
			"tweet_text":   args.Text,
			"dark_request": false,
			"media": map[string]any{
				"media_entities":     []any{},
				"possibly_sensitive": false,
			},
			"semantic_annotation_ids": []any{},
		}
		return postRequest(kind, ep, variables)
	case TweetLike, TweetRetweet:
		if args.ID == "" {
			return nil, fmt.Errorf("%s: tweet id is required", kind)
		}
		variables = map[string]any{"tweet_id": args.ID}
		return postRequest(kind, ep, variables)

	default:
		return nil, fmt.Errorf("unknown resource kind: %s", kind)
	}

	if args.Cursor != "" {
		variables["cursor"] = args.Cursor
	}
	return &Request{
		Method: "GET",
		URL:    addGraphQLParams(ep.URL(), variables, ep.Features),
		Kind:   kind,
	}, nil
}

// postRequest builds the descriptor for a write kind.
func postRequest(kind ResourceKind, ep Endpoint, variables map[string]any) (*Request, error) {
	body := map[string]any{
		"variables": variables,
		"queryId":   ep.ID,
	}
	if ep.Features != nil {
		body["features"] = ep.Features
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal payload: %w", kind, err)
	}
	return &Request{
		Method:  "POST",
		URL:     ep.URL(),
		Payload: payload,
		Kind:    kind,
	}, nil
}

// addGraphQLParams builds the full URL with variables and features.
func addGraphQLParams(url string, variables, features map[string]any) string {
	v, _ := json.Marshal(variables)
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	result := url + sep + "variables=" + jsonEscape(v)
	if features != nil {
		f, _ := json.Marshal(features)
		result += "&features=" + jsonEscape(f)
	}
	return result
}

func jsonEscape(b []byte) string {
	s := string(b)
	var result strings.Builder
	for _, ch := range s {
		switch {
		case ch == ' ':
			result.WriteString("%20")
		case ch == '"':
			result.WriteString("%22")
		case ch == '{':
			result.WriteString("%7B")
		case ch == '}':
			result.WriteString("%7D")
		case ch == '[':
			result.WriteString("%5B")
		case ch == ']':
			result.WriteString("%5D")
		case ch == ':':
			result.WriteString("%3A")
		case ch == ',':
			result.WriteString("%2C")
		case ch == '\'':
			result.WriteString("%27")
		case ch == '|':
			result.WriteString("%7C")
		default:
			result.WriteRune(ch)
		}
	}
	return result.String()
}

// gqlFeatures returns the canonical GraphQL feature flags.
func gqlFeatures() map[string]any {
	return map[string]any{
		"articles_preview_enabled":                                                false,
		"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
		"communities_web_enable_tweet_community_results_fetch":                    true,
		"creator_subscriptions_quote_tweet_preview_enabled":                       false,
		"creator_subscriptions_tweet_preview_api_enabled":                         true,
		"freedom_of_speech_not_reach_fetch_enabled":                               true,
		"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
		"longform_notetweets_consumption_enabled":                                 true,
		"longform_notetweets_inline_media_enabled":                                true,
		"longform_notetweets_rich_text_read_enabled":                              true,
		"premium_content_api_read_enabled":                                        false,
		"profile_label_improvements_pcf_label_in_post_enabled":                    false,
		"responsive_web_edit_tweet_api_enabled":                                   true,
		"responsive_web_enhance_cards_enabled":                                    false,
		"responsive_web_graphql_exclude_directive_enabled":                        true,
		"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
		"responsive_web_graphql_timeline_navigation_enabled":                      true,
		"responsive_web_grok_analyze_button_fetch_trends_enabled":                 false,
		"responsive_web_grok_analyze_post_followups_enabled":                      false,
		"responsive_web_grok_image_annotation_enabled":                            false,
		"responsive_web_grok_share_attachment_enabled":                            false,
		"responsive_web_media_download_video_enabled":                             false,
		"responsive_web_twitter_article_tweet_consumption_enabled":                true,
		"rweb_tipjar_consumption_enabled":                                         true,
		"rweb_video_timestamps_enabled":                                           true,
		"standardized_nudges_misinfo":                                             true,
		"tweet_awards_web_tipping_enabled":                                        false,
		"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
		"tweet_with_visibility_results_prefer_gql_media_interstitial_enabled":     false,
		"tweetypie_unmention_optimization_enabled":                                true,
		"verified_phone_label_enabled":                                            false,
		"view_counts_everywhere_api_enabled":                                      true,
	}
}
