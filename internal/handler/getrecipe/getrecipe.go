// Package getrecipe returns a single favorited recipe by its key.
package getrecipe

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
)

// Favorites looks up a saved recipe by key.
type Favorites interface {
	Get(ctx context.Context, id string) (*chefdb.Recipe, error)
}

type Handler struct {
	favorites Favorites
}

func NewHandler(favorites Favorites) *Handler {
	return &Handler{
		favorites: favorites,
	}
}

func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "recipeID")

	recipe, err := h.favorites.Get(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "getrecipe: getting recipe", "error", err, "id", id)
		http.Error(w, "getting recipe failed", http.StatusInternalServerError)
		return
	}
	if recipe == nil {
		http.Error(w, "recipe not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(recipe); err != nil {
		slog.ErrorContext(ctx, "getrecipe: writing response", "error", err)
	}
}
