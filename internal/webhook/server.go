package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/shopmate-fulfillment/server/internal/fulfillment"
	"github.com/shopmate-fulfillment/server/internal/state"
	logx "github.com/shopmate-fulfillment/server/pkg/logger"
)

const (
	maxRequestSizeBytes = 1 << 20

	// fallbackReply covers unrecognized intents and handlers that produced
	// no output; the channel must always get a user-visible reply.
	fallbackReply = "Maaf kijiye, main aapki baat samajh nahi paya. Dobara koshish karein."
)

// Server hosts the fulfillment endpoint. It owns the per-turn channel duties
// the core stays out of: decoding the envelope, ticking context lifespans
// once per turn, and serializing the reply.
type Server struct {
	registry fulfillment.Registry
	contexts state.Store
}

func NewServer(registry fulfillment.Registry, contexts state.Store) *Server {
	return &Server{registry: registry, contexts: contexts}
}

// Handler returns the HTTP surface of the endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.handleWebhook)
	return mux
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	body := io.LimitReader(r.Body, maxRequestSizeBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		logx.Warn().Err(err).Msg("failed to decode webhook request")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sessionID := sessionIDFrom(req.Session)
	if sessionID == "" {
		http.Error(w, "session is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// One decrement per turn, before the handler reads or writes anything.
	if err := s.contexts.Tick(ctx, sessionID); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to tick context lifespans")
	}

	conv := fulfillment.NewConversation(fulfillment.IntentRequest{
		Name:       req.QueryResult.Intent.DisplayName,
		Parameters: req.QueryResult.Parameters,
		Query:      req.QueryResult.QueryText,
	}, state.NewSession(s.contexts, sessionID))

	resp := s.dispatch(ctx, conv)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("failed to write webhook response")
	}
}

// dispatch runs the handler and folds unknown intents and empty replies into
// the generic fallback text.
func (s *Server) dispatch(ctx context.Context, conv *fulfillment.Conversation) Response {
	if err := s.registry.Dispatch(ctx, conv); err != nil {
		if errors.Is(err, fulfillment.ErrUnknownIntent) {
			logx.Warn().Str("intent", conv.Request().Name).Msg("no handler registered for intent")
		} else {
			logx.Error().Err(err).Str("intent", conv.Request().Name).Msg("dispatch failed")
		}
		return Response{FulfillmentText: fallbackReply}
	}

	reply := conv.Reply()
	if reply.IsEmpty() {
		logx.Warn().Str("intent", conv.Request().Name).Msg("handler produced no reply")
		return Response{FulfillmentText: fallbackReply}
	}
	return newResponse(reply)
}

func sessionIDFrom(session string) string {
	session = strings.TrimSpace(session)
	if session == "" {
		return ""
	}
	// The channel sends a resource path; the last segment is the session id.
	if idx := strings.LastIndex(session, "/"); idx >= 0 {
		return session[idx+1:]
	}
	return session
}
