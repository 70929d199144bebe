// Package extract derives structured recipe fields from a free-text
// model answer by splitting on fixed anchor substrings. The algorithm
// is deliberately the same brittle textual split the product has always
// used: historical answers were stored in this shape, and a smarter
// parse would classify them differently. Callers must treat any error
// as "this answer is not a recipe" and abort curation.
package extract

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	markerIngredients  = "**Ingredients:**"
	markerInstructions = "**Instructions:**"

	// headingArtifact is the leftover of a markdown heading line once
	// the title text is removed from it.
	headingArtifact = "##  \n\n"
)

// Fields are the four sections derived from one answer.
type Fields struct {
	Title        string
	Summary      string
	Ingredients  string
	Instructions string
}

// MarkerError reports an answer missing one of the fixed anchors.
type MarkerError struct {
	Marker string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("extract: answer missing marker %q", e.Marker)
}

// Extract splits a model answer into title, summary, ingredients and
// instructions. The instructions anchor is required; the other fields
// degrade to whatever text precedes their markers, matching the
// behavior historical records were derived with.
func Extract(answer string) (Fields, error) {
	title := strings.Split(answer, "\n\n")[0]
	title = strings.ReplaceAll(title, "##", "")
	title = strings.TrimLeftFunc(title, unicode.IsSpace)

	summary := strings.Split(answer, markerIngredients)[0]
	summary = strings.ReplaceAll(summary, title, "")
	summary = strings.ReplaceAll(summary, headingArtifact, "")

	ingredients := strings.Split(answer, markerInstructions)[0]
	ingredients = strings.ReplaceAll(ingredients, title, "")
	ingredients = strings.ReplaceAll(ingredients, summary, "")
	ingredients = strings.ReplaceAll(ingredients, headingArtifact, "")
	ingredients = strings.ReplaceAll(ingredients, markerIngredients+"\n\n", "")

	parts := strings.Split(answer, markerInstructions)
	if len(parts) < 2 {
		return Fields{}, &MarkerError{Marker: markerInstructions}
	}
	instructions := strings.ReplaceAll(parts[1], "\n\n", "")

	return Fields{
		Title:        title,
		Summary:      summary,
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}
