package fulfillment

import (
	"context"
	"errors"
	"fmt"

	logx "github.com/shopmate-fulfillment/server/pkg/logger"
)

// ErrUnknownIntent is returned when the incoming intent has no registered
// handler. The hosting channel decides the fallback reply; the core only
// covers registered intents.
var ErrUnknownIntent = errors.New("intent is not registered")

// HandlerFunc runs one intent to completion. A handler never fails outward:
// every execution path, including adapter errors, ends with exactly one reply
// added to the conversation.
type HandlerFunc func(ctx context.Context, conv *Conversation)

// Registry is the immutable intent table, built once at startup. It is the
// single source of truth for which intents are supported.
type Registry map[string]HandlerFunc

// Dispatch looks up the handler for the conversation's intent and runs it.
// The dispatcher does not post-process, retry, or touch the reply.
func (r Registry) Dispatch(ctx context.Context, conv *Conversation) error {
	name := conv.Request().Name

	handler, ok := r[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIntent, name)
	}

	logx.Debug().Str("intent", name).Msg("dispatching intent")
	handler(ctx, conv)
	return nil
}
