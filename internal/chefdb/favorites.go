package chefdb

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"
)

const recipesPath = "recipes"

// Favorites persists favorited recipes in the realtime database. The
// store exposes no update or delete: records are append-only once
// created through the curation flow.
type Favorites struct {
	db *db.Client
}

func NewFavorites(client *db.Client) *Favorites {
	return &Favorites{
		db: client,
	}
}

// Exists reports whether the owner already favorited a recipe with the
// given title. The check is scoped per owner so two users can each
// favorite the same dish.
func (f *Favorites) Exists(ctx context.Context, ownerUID string, title string) (bool, error) {
	nodes, err := f.db.NewRef(recipesPath).OrderByChild("title").EqualTo(title).GetOrdered(ctx)
	if err != nil {
		return false, fmt.Errorf("chefdb: querying favorites by title: %w", err)
	}
	for _, node := range nodes {
		var raw map[string]any
		if err := node.Unmarshal(&raw); err != nil {
			return false, fmt.Errorf("chefdb: decoding favorite %s: %w", node.Key(), err)
		}
		recipe, err := parseRecipe(raw)
		if err != nil {
			return false, fmt.Errorf("chefdb: parsing favorite %s: %w", node.Key(), err)
		}
		if recipe.UID == ownerUID {
			return true, nil
		}
	}
	return false, nil
}

// Put writes the recipe, assigning a fresh push key when the ID is
// unset. The key is written into the record itself before the set so
// reads always carry it.
func (f *Favorites) Put(ctx context.Context, recipe *Recipe) (string, error) {
	ref := f.db.NewRef(recipesPath)
	if recipe.ID == "" {
		pushed, err := ref.Push(ctx, nil)
		if err != nil {
			return "", fmt.Errorf("chefdb: allocating push key: %w", err)
		}
		recipe.ID = pushed.Key
	}
	if err := ref.Child(recipe.ID).Set(ctx, recipe); err != nil {
		return "", fmt.Errorf("chefdb: writing recipe %s: %w", recipe.ID, err)
	}
	return recipe.ID, nil
}

// ListByOwner returns all recipes owned by the user, empty when the
// user has not favorited anything yet.
func (f *Favorites) ListByOwner(ctx context.Context, ownerUID string) ([]*Recipe, error) {
	nodes, err := f.db.NewRef(recipesPath).OrderByChild("uid").EqualTo(ownerUID).GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("chefdb: querying favorites by owner: %w", err)
	}
	recipes := make([]*Recipe, 0, len(nodes))
	for _, node := range nodes {
		var raw map[string]any
		if err := node.Unmarshal(&raw); err != nil {
			return nil, fmt.Errorf("chefdb: decoding favorite %s: %w", node.Key(), err)
		}
		recipe, err := parseRecipe(raw)
		if err != nil {
			return nil, fmt.Errorf("chefdb: parsing favorite %s: %w", node.Key(), err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// Get looks up a single recipe by its push key. A missing record is
// returned as nil without error.
func (f *Favorites) Get(ctx context.Context, id string) (*Recipe, error) {
	var raw map[string]any
	if err := f.db.NewRef(recipesPath).Child(id).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("chefdb: getting recipe %s: %w", id, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	recipe, err := parseRecipe(raw)
	if err != nil {
		return nil, fmt.Errorf("chefdb: parsing recipe %s: %w", id, err)
	}
	return recipe, nil
}
