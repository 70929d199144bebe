package chefdb

import (
	"fmt"
	"time"
)

// FieldError reports a stored record missing a required field or
// holding a value of the wrong type.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("chefdb: record missing required field %q", e.Field)
}

// parseRecipe decodes a raw database value into a Recipe, checking
// field presence explicitly instead of silently defaulting.
func parseRecipe(raw map[string]any) (*Recipe, error) {
	recipe := &Recipe{}
	var err error
	if recipe.ID, err = requiredString(raw, "id"); err != nil {
		return nil, err
	}
	if recipe.Title, err = requiredString(raw, "title"); err != nil {
		return nil, err
	}
	if recipe.UID, err = requiredString(raw, "uid"); err != nil {
		return nil, err
	}
	if recipe.Summary, err = requiredString(raw, "summary"); err != nil {
		return nil, err
	}
	if recipe.Ingredients, err = requiredString(raw, "ingredients"); err != nil {
		return nil, err
	}
	if recipe.Instructions, err = requiredString(raw, "instructions"); err != nil {
		return nil, err
	}
	recipe.ImageURL = optionalString(raw, "imageUrl")
	if ts := optionalString(raw, "updatedAt"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			recipe.UpdatedAt = t
		}
	}
	return recipe, nil
}

func requiredString(raw map[string]any, field string) (string, error) {
	v, ok := raw[field]
	if !ok {
		return "", &FieldError{Field: field}
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Field: field}
	}
	return s, nil
}

func optionalString(raw map[string]any, field string) string {
	s, _ := raw[field].(string)
	return s
}
