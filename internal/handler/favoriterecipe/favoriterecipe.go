// Package favoriterecipe curates a starred answer into the user's
// favorites.
package favoriterecipe

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlltidSemester1337/chef-web-backend/internal/auth"
	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/curate"
	"github.com/AlltidSemester1337/chef-web-backend/internal/extract"
	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

type Handler struct {
	curator  *curate.Curator
	sessions *session.Manager
	users    session.UserSource
}

func NewHandler(curator *curate.Curator, sessions *session.Manager, users session.UserSource) *Handler {
	return &Handler{
		curator:  curator,
		sessions: sessions,
		users:    users,
	}
}

type request struct {
	Answer string `json:"answer"`
}

type response struct {
	Status string         `json:"status"`
	Recipe *chefdb.Recipe `json:"recipe,omitempty"`
}

// FavoriteRecipe runs the curation pipeline for the starred answer.
// Duplicates and non-recipe answers are soft outcomes reported in the
// status field rather than HTTP errors, so the UI can react in place.
func (h *Handler) FavoriteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Answer == "" {
		http.Error(w, "answer is required", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Ensure(ctx, auth.UserID(ctx), h.users)
	if err != nil {
		slog.ErrorContext(ctx, "favoriterecipe: resolving session", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	res := response{Status: "saved"}
	recipe, err := h.curator.Curate(ctx, sess, req.Answer)
	var markerErr *extract.MarkerError
	switch {
	case errors.Is(err, curate.ErrDuplicate):
		res.Status = "duplicate"
	case errors.As(err, &markerErr):
		res.Status = "not_a_recipe"
	case err != nil:
		slog.ErrorContext(ctx, "favoriterecipe: curating recipe", "error", err)
		http.Error(w, "favoriting failed", http.StatusInternalServerError)
		return
	default:
		res.Recipe = recipe
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "favoriterecipe: writing response", "error", err)
	}
}
