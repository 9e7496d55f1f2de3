package state

import (
	"encoding/json"
	"testing"
)

func TestRedisStoreSessionKey(t *testing.T) {
	t.Parallel()

	store := &RedisStore{}
	if got := store.sessionKey("abc"); got != "contexts:abc" {
		t.Fatalf("sessionKey() = %q, want %q", got, "contexts:abc")
	}
}

func TestEntryRoundTrip(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Entry{Parameters: map[string]any{"last_response": "hi"}, RemainingTurns: 5})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var entry Entry
	if err := json.Unmarshal(b, &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if entry.RemainingTurns != 5 {
		t.Fatalf("RemainingTurns = %d, want 5", entry.RemainingTurns)
	}
	if entry.Parameters["last_response"] != "hi" {
		t.Fatalf("Parameters = %#v, want last_response=hi", entry.Parameters)
	}
}
