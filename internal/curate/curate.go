// Package curate turns a starred free-text answer into a structured,
// persisted favorite recipe.
package curate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/extract"
	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

// ErrDuplicate reports that the owner already favorited a recipe with
// the same title. Starring an answer twice is an idempotent no-op.
var ErrDuplicate = errors.New("curate: recipe already in favorites")

// Favorites is the slice of the store the curator needs.
type Favorites interface {
	Exists(ctx context.Context, ownerUID string, title string) (bool, error)
	Put(ctx context.Context, recipe *chefdb.Recipe) (string, error)
}

// Illustrator generates a public image URL for a recipe text.
type Illustrator interface {
	Illustrate(ctx context.Context, recipeText string) (string, error)
}

type Curator struct {
	favorites   Favorites
	illustrator Illustrator
}

func New(favorites Favorites, illustrator Illustrator) *Curator {
	return &Curator{
		favorites:   favorites,
		illustrator: illustrator,
	}
}

// Curate runs the favoriting pipeline for one answer: derive the
// structured fields, skip if the owner already has the title,
// illustrate best-effort, persist, and mark the answer as favorited in
// the session. Extraction failure aborts with no state change. A store
// write failure is logged but still marks the session: in-memory state
// stays authoritative until the next load.
func (c *Curator) Curate(ctx context.Context, sess *session.Session, answer string) (*chefdb.Recipe, error) {
	fields, err := extract.Extract(answer)
	if err != nil {
		slog.WarnContext(ctx, "curate: deriving recipe fields", "error", err)
		return nil, fmt.Errorf("curate: extracting recipe: %w", err)
	}

	duplicate, err := c.favorites.Exists(ctx, sess.User.UID, fields.Title)
	if err != nil {
		return nil, fmt.Errorf("curate: checking for duplicate: %w", err)
	}
	if duplicate {
		slog.DebugContext(ctx, "curate: recipe already in favorites", "title", fields.Title)
		return nil, ErrDuplicate
	}

	imageURL := ""
	if url, err := c.illustrator.Illustrate(ctx, answer); err != nil {
		slog.WarnContext(ctx, "curate: generating recipe image", "error", err, "title", fields.Title)
	} else {
		imageURL = url
	}

	recipe := &chefdb.Recipe{
		Title:        fields.Title,
		ImageURL:     imageURL,
		Summary:      fields.Summary,
		Ingredients:  fields.Ingredients,
		Instructions: fields.Instructions,
		UpdatedAt:    time.Now().UTC(),
		UID:          sess.User.UID,
	}
	if _, err := c.favorites.Put(ctx, recipe); err != nil {
		slog.ErrorContext(ctx, "curate: saving recipe", "error", err, "title", fields.Title)
	}

	sess.MarkFavorited(answer)
	return recipe, nil
}
