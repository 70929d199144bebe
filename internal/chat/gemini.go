package chat

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/llm"
)

// GeminiStreamer streams answers from a Gemini chat session seeded with
// the cooking-assistant system instruction.
type GeminiStreamer struct {
	genAI *genai.Client
}

func NewGeminiStreamer(genAI *genai.Client) *GeminiStreamer {
	return &GeminiStreamer{
		genAI: genAI,
	}
}

func (g *GeminiStreamer) Stream(ctx context.Context, history []chefdb.ChatTurn, question string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		contents := make([]*genai.Content, 0, len(history)*2)
		for _, turn := range history {
			contents = append(contents,
				genai.NewContentFromText(turn.Question, genai.RoleUser),
				genai.NewContentFromText(turn.Answer, genai.RoleModel),
			)
		}

		chat, err := g.genAI.Chats.Create(ctx, llm.ChatModel, &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(llm.SystemInstruction(), genai.RoleModel),
			Temperature:       genai.Ptr(llm.Temperature),
			TopP:              genai.Ptr(llm.TopP),
			MaxOutputTokens:   llm.MaxOutputTokens,
		}, contents)
		if err != nil {
			yield("", fmt.Errorf("chat: creating gemini chat session: %w", err))
			return
		}

		for res, err := range chat.SendMessageStream(ctx, genai.Part{Text: question}) {
			if err != nil {
				yield("", fmt.Errorf("chat: receiving gemini fragment: %w", err))
				return
			}
			if text := res.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}
