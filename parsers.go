package xapi

import (
	"encoding/json"
	"log/slog"
)

// Discriminator and cursor field names on the raw GraphQL nodes.
const (
	typeNameField   = "__typename"
	cursorTypeField = "cursorType"
	cursorBottom    = "Bottom"
)

// entityTypeName returns the __typename value that identifies entity nodes
// for a resource kind. Tweet-shaped listings carry "Tweet" nodes; every
// other kind yields "User" nodes.
func entityTypeName(kind ResourceKind) string {
	switch kind {
	case TweetDetails, TweetSearch, UserLikes:
		return "Tweet"
	default:
		return "User"
	}
}

// normalize turns a raw response body into a typed page. Entity nodes are
// collected in discovery order; the cursor is the value of the first
// bottom-cursor node, or empty when the listing has no further page. A body
// with no matching nodes is an empty page, not an error.
func normalize[T any](body []byte, kind ResourceKind) (*CursoredData[T], error) {
	root, err := ParseTree(body)
	if err != nil {
		return nil, err
	}

	var page CursoredData[T]
	for _, n := range root.FindAll(typeNameField, entityTypeName(kind)) {
		var entity T
		if err := json.Unmarshal(n.Raw(), &entity); err != nil {
			slog.Debug("entity node decode", slog.String("resource", string(kind)), slog.Any("error", err))
		}
		page.List = append(page.List, entity)
	}

	if cursors := root.FindAll(cursorTypeField, cursorBottom); len(cursors) > 0 {
		page.Next = cursors[0].Field("value").Text()
	}
	return &page, nil
}
