// Package listrecipes returns the user's favorited recipes.
package listrecipes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AlltidSemester1337/chef-web-backend/internal/auth"
	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
)

// Favorites lists the user's saved recipes.
type Favorites interface {
	ListByOwner(ctx context.Context, ownerUID string) ([]*chefdb.Recipe, error)
}

type Handler struct {
	favorites Favorites
}

func NewHandler(favorites Favorites) *Handler {
	return &Handler{
		favorites: favorites,
	}
}

type response struct {
	Recipes []*chefdb.Recipe `json:"recipes"`
}

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipes, err := h.favorites.ListByOwner(ctx, auth.UserID(ctx))
	if err != nil {
		slog.ErrorContext(ctx, "listrecipes: listing favorites", "error", err)
		http.Error(w, "listing favorites failed", http.StatusInternalServerError)
		return
	}
	if recipes == nil {
		recipes = []*chefdb.Recipe{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{Recipes: recipes}); err != nil {
		slog.ErrorContext(ctx, "listrecipes: writing response", "error", err)
	}
}
