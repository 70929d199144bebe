package chat

import (
	"context"
	"fmt"
	"iter"

	"github.com/openai/openai-go/v3"

	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/llm"
)

const openAIModel = openai.ChatModelGPT4o

// OpenAIStreamer is the alternate chat provider, streaming answers from
// OpenAI chat completions with the same persona and parameters.
type OpenAIStreamer struct {
	oai *openai.Client
}

func NewOpenAIStreamer(oai *openai.Client) *OpenAIStreamer {
	return &OpenAIStreamer{
		oai: oai,
	}
}

func (o *OpenAIStreamer) Stream(ctx context.Context, history []chefdb.ChatTurn, question string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)*2+2)
		messages = append(messages, openai.SystemMessage(llm.SystemInstruction()))
		for _, turn := range history {
			messages = append(messages,
				openai.UserMessage(turn.Question),
				openai.AssistantMessage(turn.Answer),
			)
		}
		messages = append(messages, openai.UserMessage(question))

		stream := o.oai.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
			Model:       openAIModel,
			Messages:    messages,
			Temperature: openai.Float(float64(llm.Temperature)),
			TopP:        openai.Float(float64(llm.TopP)),
			MaxTokens:   openai.Int(int64(llm.MaxOutputTokens)),
		})
		defer func() {
			_ = stream.Close()
		}()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			if text := chunk.Choices[0].Delta.Content; text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
		if err := stream.Err(); err != nil {
			yield("", fmt.Errorf("chat: streaming from openai: %w", err))
		}
	}
}
