package chefdb

import (
	"time"
)

// Recipe is a favorited recipe stored in the realtime database under
// the recipes path. Records are append-only: once created through the
// curation flow they are never edited.
type Recipe struct {
	// ID is the push key assigned by the database on creation.
	ID string `json:"id"`

	// Title is the recipe title derived from the model answer. It is
	// the natural dedup key per owner.
	Title string `json:"title"`

	// ImageURL is the public URL of the generated illustration, empty
	// when image generation failed or was skipped.
	ImageURL string `json:"imageUrl,omitempty"`

	// Summary is the free-text description of the recipe.
	Summary string `json:"summary"`

	// Ingredients is the ingredient list as free-form text.
	Ingredients string `json:"ingredients"`

	// Instructions are the preparation steps as free-form text.
	Instructions string `json:"instructions"`

	// UpdatedAt is the UTC time the record was created.
	UpdatedAt time.Time `json:"updatedAt"`

	// UID is the ID of the user owning the recipe.
	UID string `json:"uid"`
}
