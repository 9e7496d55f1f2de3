package fulfillment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopmate-fulfillment/server/internal/state"
)

func TestDispatchInvokesRegisteredHandler(t *testing.T) {
	t.Parallel()

	invoked := 0
	registry := Registry{
		"Greet": func(ctx context.Context, conv *Conversation) {
			invoked++
			conv.AddText("hello")
		},
	}

	conv := newTestConversation("Greet", nil, "", state.NewMemoryStore())
	if err := registry.Dispatch(context.Background(), conv); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if invoked != 1 {
		t.Fatalf("handler invoked %d times, want 1", invoked)
	}
	if got := conv.Reply().Text; got != "hello" {
		t.Fatalf("reply = %q, want %q", got, "hello")
	}
}

func TestDispatchUnknownIntent(t *testing.T) {
	t.Parallel()

	registry := Registry{}
	conv := newTestConversation("Nope", nil, "", state.NewMemoryStore())

	err := registry.Dispatch(context.Background(), conv)
	if !errors.Is(err, ErrUnknownIntent) {
		t.Fatalf("Dispatch() error = %v, want ErrUnknownIntent", err)
	}
	if !conv.Reply().IsEmpty() {
		t.Fatalf("reply = %#v, want empty", conv.Reply())
	}
}
