// Package sendchat streams one chat turn to the client as server-sent
// events, one event per model fragment.
package sendchat

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AlltidSemester1337/chef-web-backend/internal/auth"
	"github.com/AlltidSemester1337/chef-web-backend/internal/chat"
	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

type Handler struct {
	chats    *chat.Orchestrator
	sessions *session.Manager
	users    session.UserSource
}

func NewHandler(chats *chat.Orchestrator, sessions *session.Manager, users session.UserSource) *Handler {
	return &Handler{
		chats:    chats,
		sessions: sessions,
		users:    users,
	}
}

type request struct {
	Question string `json:"question"`
}

type fragmentEvent struct {
	Text string `json:"text"`
}

// SendChat runs one turn and streams the answer fragments as SSE data
// events, terminated by a done event, or an error event if the model
// stream fails mid-turn.
func (h *Handler) SendChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Ensure(ctx, auth.UserID(ctx), h.users)
	if err != nil {
		slog.ErrorContext(ctx, "sendchat: resolving session", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fragments, result := h.chats.Ask(ctx, sess, req.Question)
	for fragment := range fragments {
		data, err := json.Marshal(fragmentEvent{Text: fragment})
		if err != nil {
			slog.ErrorContext(ctx, "sendchat: encoding fragment", "error", err)
			continue
		}
		if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
			slog.WarnContext(ctx, "sendchat: client disconnected", "error", err)
			// Keep draining so the turn completes and persists.
			for range fragments {
			}
			break
		}
		flusher.Flush()
	}

	if err := <-result; err != nil {
		slog.ErrorContext(ctx, "sendchat: streaming answer", "error", err)
		_, _ = w.Write([]byte("event: error\ndata: {}\n\n"))
		flusher.Flush()
		return
	}
	_, _ = w.Write([]byte("event: done\ndata: {}\n\n"))
	flusher.Flush()
}
