package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomatoSoup = "## Tomato Soup\n\n**Ingredients:**\n\n- tomatoes\n\n**Instructions:**\n\nChop. Boil."

func TestExtract_TomatoSoup(t *testing.T) {
	fields, err := Extract(tomatoSoup)
	require.NoError(t, err)

	assert.Equal(t, "Tomato Soup", fields.Title)
	assert.Contains(t, fields.Ingredients, "- tomatoes")
	assert.NotContains(t, fields.Ingredients, "**Ingredients:**")
	assert.Equal(t, "Chop. Boil.", fields.Instructions)
}

func TestExtract_WellFormedAnswer(t *testing.T) {
	answer := "## Honest Lentil Stew\n\n" +
		"A hearty, savory stew of green lentils and root vegetables. Approx. 450 kcal per serving.\n\n" +
		"**Ingredients:**\n\n" +
		"- 2 dl green lentils\n- 1 carrot\n- 5 dl vegetable stock\n\n" +
		"**Instructions:**\n\n" +
		"1. Rinse the lentils.\n\n2. Simmer everything for 25 minutes."

	fields, err := Extract(answer)
	require.NoError(t, err)

	assert.Equal(t, "Honest Lentil Stew", fields.Title)
	assert.Contains(t, fields.Summary, "hearty, savory stew")
	assert.NotContains(t, fields.Summary, "Honest Lentil Stew")
	assert.Contains(t, fields.Ingredients, "- 2 dl green lentils")
	assert.Contains(t, fields.Ingredients, "- 5 dl vegetable stock")
	assert.Contains(t, fields.Instructions, "Rinse the lentils.")
	assert.NotContains(t, fields.Instructions, "\n\n")
}

func TestExtract_MissingInstructionsMarker(t *testing.T) {
	answer := "## Tomato Soup\n\n**Ingredients:**\n\n- tomatoes\n\nChop. Boil."

	_, err := Extract(answer)
	require.Error(t, err)

	var markerErr *MarkerError
	require.True(t, errors.As(err, &markerErr))
	assert.Equal(t, "**Instructions:**", markerErr.Marker)
}

func TestExtract_TitleStripsHeadingMarkup(t *testing.T) {
	fields, err := Extract("##   Spiced Chickpeas\n\n**Instructions:**\n\nRoast.")
	require.NoError(t, err)
	assert.Equal(t, "Spiced Chickpeas", fields.Title)
}

func TestExtract_NonRecipeChatter(t *testing.T) {
	_, err := Extract("Sure! What kind of cuisine are you in the mood for today?")
	require.Error(t, err)
}
