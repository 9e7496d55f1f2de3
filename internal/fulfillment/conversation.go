package fulfillment

import (
	"context"
	"errors"

	"github.com/shopmate-fulfillment/server/internal/state"
	logx "github.com/shopmate-fulfillment/server/pkg/logger"
)

const (
	// ContextLastResponse is the context entry holding the previous answer,
	// kept so a follow-up "translate that" has something to work with.
	ContextLastResponse = "last-response-context"
	// ParamLastResponse is the parameter key inside ContextLastResponse.
	ParamLastResponse = "last_response"

	lastResponseLifespan = 5
)

// Conversation is the per-turn envelope handed to a handler: the incoming
// intent, a session-scoped view of the context store, and the reply slot.
type Conversation struct {
	req      IntentRequest
	contexts *state.Session
	reply    Reply
}

func NewConversation(req IntentRequest, contexts *state.Session) *Conversation {
	return &Conversation{req: req, contexts: contexts}
}

func (c *Conversation) Request() IntentRequest {
	return c.req
}

// AddText sets a plain-text reply for this turn.
func (c *Conversation) AddText(text string) {
	c.reply = Reply{Text: text}
}

// AddRichList sets a structured rich-list reply for this turn.
func (c *Conversation) AddRichList(items []RichItem) {
	c.reply = Reply{Rich: &RichList{Items: items}}
}

func (c *Conversation) Reply() Reply {
	return c.reply
}

// SaveLastResponse records text as the recallable previous answer with a
// lifespan of five turns. A store failure is logged and swallowed: the reply
// that was already added must still reach the user.
func (c *Conversation) SaveLastResponse(ctx context.Context, text string) {
	params := map[string]any{ParamLastResponse: text}
	if err := c.contexts.Set(ctx, ContextLastResponse, params, lastResponseLifespan); err != nil {
		logx.Error().Err(err).Str("session_id", c.contexts.ID()).Msg("failed to save last response context")
	}
}

// LastResponse returns the previous answer if it is still alive. Absent and
// expired entries both report false; a stale value is never returned.
func (c *Conversation) LastResponse(ctx context.Context) (string, bool) {
	params, err := c.contexts.Get(ctx, ContextLastResponse)
	if err != nil {
		if !errors.Is(err, state.ErrContextNotFound) {
			logx.Error().Err(err).Str("session_id", c.contexts.ID()).Msg("failed to read last response context")
		}
		return "", false
	}
	text, ok := params[ParamLastResponse].(string)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}
