// Package chathistory reloads the user's persisted chat log into the
// session and returns it, with each answer flagged when its recipe is
// already in the user's favorites.
package chathistory

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/AlltidSemester1337/chef-web-backend/internal/auth"
	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/extract"
	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

// ChatLog is the slice of the chat store the handler needs.
type ChatLog interface {
	History(ctx context.Context, uid string) ([]chefdb.ChatTurn, error)
}

// Favorites lists the user's saved recipes.
type Favorites interface {
	ListByOwner(ctx context.Context, ownerUID string) ([]*chefdb.Recipe, error)
}

type Handler struct {
	chatLog   ChatLog
	favorites Favorites
	sessions  *session.Manager
	users     session.UserSource
}

func NewHandler(chatLog ChatLog, favorites Favorites, sessions *session.Manager, users session.UserSource) *Handler {
	return &Handler{
		chatLog:   chatLog,
		favorites: favorites,
		sessions:  sessions,
		users:     users,
	}
}

type turn struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Favorited bool   `json:"favorited"`
}

type response struct {
	Turns []turn `json:"turns"`
}

// ChatHistory loads the persisted turns and favorites concurrently,
// replaces the session's transient history, and marks answers whose
// extracted title matches a favorite so the UI shows them as starred.
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := auth.UserID(ctx)

	sess, err := h.sessions.Ensure(ctx, uid, h.users)
	if err != nil {
		slog.ErrorContext(ctx, "chathistory: resolving session", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	var turns []chefdb.ChatTurn
	var favorites []*chefdb.Recipe
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		turns, err = h.chatLog.History(gctx, uid)
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = h.favorites.ListByOwner(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "chathistory: loading history", "error", err)
		http.Error(w, "loading history failed", http.StatusInternalServerError)
		return
	}

	sess.SetHistory(turns)

	favoritedTitles := make(map[string]bool, len(favorites))
	for _, recipe := range favorites {
		favoritedTitles[recipe.Title] = true
	}

	res := response{Turns: make([]turn, 0, len(turns))}
	for _, t := range turns {
		favorited := false
		// Answers that do not parse as a recipe are plain chatter and
		// can never be favorited.
		if fields, err := extract.Extract(t.Answer); err == nil && favoritedTitles[fields.Title] {
			favorited = true
			sess.MarkFavorited(t.Answer)
		}
		res.Turns = append(res.Turns, turn{Question: t.Question, Answer: t.Answer, Favorited: favorited})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "chathistory: writing response", "error", err)
	}
}
