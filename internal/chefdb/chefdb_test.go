package chefdb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"id":           "r1",
		"title":        "Tomato Soup",
		"uid":          "u1",
		"summary":      "A quick soup.",
		"ingredients":  "- tomatoes",
		"instructions": "Chop. Boil.",
		"imageUrl":     "https://example.com/r1.jpg",
		"updatedAt":    "2026-08-27T10:00:00Z",
	}
}

func TestParseRecipe(t *testing.T) {
	recipe, err := parseRecipe(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "r1", recipe.ID)
	assert.Equal(t, "Tomato Soup", recipe.Title)
	assert.Equal(t, "u1", recipe.UID)
	assert.Equal(t, "https://example.com/r1.jpg", recipe.ImageURL)
	assert.Equal(t, time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC), recipe.UpdatedAt)
}

func TestParseRecipe_MissingRequiredField(t *testing.T) {
	for _, field := range []string{"id", "title", "uid", "summary", "ingredients", "instructions"} {
		t.Run(field, func(t *testing.T) {
			raw := validRaw()
			delete(raw, field)

			_, err := parseRecipe(raw)
			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, field, fieldErr.Field)
		})
	}
}

func TestParseRecipe_OptionalFieldsAbsent(t *testing.T) {
	raw := validRaw()
	delete(raw, "imageUrl")
	delete(raw, "updatedAt")

	recipe, err := parseRecipe(raw)
	require.NoError(t, err)
	assert.Empty(t, recipe.ImageURL)
	assert.True(t, recipe.UpdatedAt.IsZero())
}

func TestParseRecipe_WrongType(t *testing.T) {
	raw := validRaw()
	raw["title"] = 42

	_, err := parseRecipe(raw)
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "title", fieldErr.Field)
}

func entry(role ChatRole, text string) ChatEntry {
	return ChatEntry{Parts: []ChatPart{{Text: text}}, Role: role}
}

func TestPairTurns(t *testing.T) {
	turns := PairTurns([]ChatEntry{
		entry(ChatRoleUser, "q1"),
		entry(ChatRoleModel, "a1"),
		entry(ChatRoleUser, "q2"),
		entry(ChatRoleModel, "a2"),
	})
	assert.Equal(t, []ChatTurn{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}, turns)
}

func TestPairTurns_TrailingUnpairedEntry(t *testing.T) {
	turns := PairTurns([]ChatEntry{
		entry(ChatRoleUser, "q1"),
		entry(ChatRoleModel, "a1"),
		entry(ChatRoleUser, "dangling"),
	})
	assert.Equal(t, []ChatTurn{{Question: "q1", Answer: "a1"}}, turns)
}

func TestPairTurns_EmptySideSkipped(t *testing.T) {
	turns := PairTurns([]ChatEntry{
		entry(ChatRoleUser, "q1"),
		{Role: ChatRoleModel},
		entry(ChatRoleUser, "q2"),
		entry(ChatRoleModel, "a2"),
	})
	assert.Equal(t, []ChatTurn{{Question: "q2", Answer: "a2"}}, turns)
}

func TestPairTurns_Empty(t *testing.T) {
	assert.Empty(t, PairTurns(nil))
}
