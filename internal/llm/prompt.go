package llm

import "fmt"

// ChatModel is the generative model answering cooking questions.
const ChatModel = "gemini-2.0-flash-001"

// ImageModel is the image model illustrating favorited recipes.
const ImageModel = "imagen-3.0-generate-002"

// Generation parameters for the chat model. High temperature is
// intentional: recipe ideation benefits from variety.
const (
	Temperature     float32 = 2.0
	TopP            float32 = 0.95
	MaxOutputTokens int32   = 8192
)

func SystemInstruction() string {
	return systemInstruction
}

const systemInstruction = "You are a personal chef / cooking assistant to help with coming up for new ideas on recipes. " +
	"Use https://www.honestgreens.com/en/menu as inspiration for the whole foods, healthy, simple, and savory cooking/recipe style. " +
	"Please use metric units and centiliters/deciliters for liquid measurements and state the nutritional values for each recipe."

func IllustrationPrompt(recipeText string) string {
	return fmt.Sprintf(illustrationPrompt, recipeText)
}

const illustrationPrompt = "As a professional photographer specializing in 100mm Macro lens natural lightning food photography, " +
	"please create a photorealistic, colorful, visually appealing image for use in a recipe collection webpage " +
	"of a single serving for the following recipe: %s"
