package xapi

import (
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()

	if err := saveSession(dir, "alice", "tok-123", "ct0-456"); err != nil {
		t.Fatal(err)
	}

	authToken, ct0, err := loadSession(dir, "alice", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if authToken != "tok-123" || ct0 != "ct0-456" {
		t.Fatalf("loaded (%q, %q)", authToken, ct0)
	}
}

func TestSessionExpiry(t *testing.T) {
	dir := t.TempDir()

	if err := saveSession(dir, "bob", "tok", "ct0"); err != nil {
		t.Fatal(err)
	}

	// A zero-duration TTL makes any saved session stale.
	authToken, ct0, err := loadSession(dir, "bob", -time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if authToken != "" || ct0 != "" {
		t.Fatal("expired session must load as empty")
	}
}

func TestSessionMissingIsNotAnError(t *testing.T) {
	authToken, ct0, err := loadSession(t.TempDir(), "nobody", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if authToken != "" || ct0 != "" {
		t.Fatal("missing session must load as empty")
	}
}

func TestParseFlowResponse(t *testing.T) {
	fr, err := parseFlowResponse([]byte(`{"flow_token":"ft-1","subtasks":[{"subtask_id":"LoginEnterPassword"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if fr.FlowToken != "ft-1" {
		t.Fatalf("flow token = %s", fr.FlowToken)
	}
	if len(fr.Subtasks) != 1 || fr.Subtasks[0].SubtaskID != "LoginEnterPassword" {
		t.Fatalf("subtasks = %+v", fr.Subtasks)
	}

	if _, err := parseFlowResponse([]byte(`{"subtasks":[]}`)); err == nil {
		t.Fatal("empty flow_token must fail")
	}
	if _, err := parseFlowResponse([]byte(`{invalid`)); err == nil {
		t.Fatal("invalid JSON must fail")
	}
}

func TestGenerateCT0(t *testing.T) {
	ct0 := GenerateCT0()
	if len(ct0) != 64 {
		t.Fatalf("expected 64 char hex, got %d chars", len(ct0))
	}
	if ct0 == GenerateCT0() {
		t.Fatal("expected different ct0 values")
	}
}

func TestLoginRequiresUsernameAndPassword(t *testing.T) {
	if _, err := Login(t.Context(), LoginConfig{}); err == nil {
		t.Fatal("expected error without username")
	}
	if _, err := Login(t.Context(), LoginConfig{Username: "alice", SessionDir: t.TempDir()}); err == nil {
		t.Fatal("expected error without saved session or password")
	}
}

func TestLoginUsesSavedSession(t *testing.T) {
	dir := t.TempDir()
	if err := saveSession(dir, "carol", "saved-tok", "saved-ct0"); err != nil {
		t.Fatal(err)
	}

	cred, err := Login(t.Context(), LoginConfig{Username: "carol", SessionDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if cred.AuthToken != "saved-tok" || cred.CT0 != "saved-ct0" {
		t.Fatalf("credential = %+v", cred)
	}
}
