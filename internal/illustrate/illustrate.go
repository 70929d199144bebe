package illustrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/AlltidSemester1337/chef-web-backend/internal/file"
	"github.com/AlltidSemester1337/chef-web-backend/internal/llm"
)

// Illustrator generates a photographic illustration for a recipe and
// publishes it to the image bucket. Calls are expensive and allowed to
// fail: the caller persists the recipe without an image rather than
// failing the whole curation.
type Illustrator struct {
	genAI      *genai.Client
	files      *file.IO
	scratchDir string
}

func New(genAI *genai.Client, files *file.IO) *Illustrator {
	return &Illustrator{
		genAI:      genAI,
		files:      files,
		scratchDir: os.TempDir(),
	}
}

// Illustrate requests one 4:3 image for the recipe text, stages it in a
// local scratch file, uploads it under a fresh random key and returns
// the public URL.
func (i *Illustrator) Illustrate(ctx context.Context, recipeText string) (string, error) {
	res, err := i.genAI.Models.GenerateImages(ctx, llm.ImageModel, llm.IllustrationPrompt(recipeText), &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "4:3",
	})
	if err != nil {
		return "", fmt.Errorf("illustrate: generating image: %w", err)
	}
	if len(res.GeneratedImages) != 1 || res.GeneratedImages[0].Image == nil || len(res.GeneratedImages[0].Image.ImageBytes) == 0 {
		return "", fmt.Errorf("illustrate: unexpected image generation response: %v", res) //nolint:err113
	}
	img := res.GeneratedImages[0].Image

	scratch := filepath.Join(i.scratchDir, "output.jpg")
	if err := os.WriteFile(scratch, img.ImageBytes, 0o600); err != nil {
		return "", fmt.Errorf("illustrate: writing scratch file: %w", err)
	}
	url, err := i.upload(ctx, scratch, img.MIMEType)
	if err := os.Remove(scratch); err != nil {
		slog.WarnContext(ctx, "illustrate: removing scratch file", "error", err)
	}
	return url, err
}

func (i *Illustrator) upload(ctx context.Context, scratch string, contentType string) (string, error) {
	data, err := os.ReadFile(scratch)
	if err != nil {
		return "", fmt.Errorf("illustrate: reading scratch file: %w", err)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	path := "recipes/" + uuid.NewString()
	url, err := i.files.WriteFile(ctx, path, contentType, data)
	if err != nil {
		return "", fmt.Errorf("illustrate: uploading image: %w", err)
	}
	if err := i.files.MakePublic(ctx, path); err != nil {
		return "", fmt.Errorf("illustrate: publishing image: %w", err)
	}
	return url, nil
}
