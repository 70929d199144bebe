// Package chat drives one conversational turn against a generative
// model, streaming the answer back fragment by fragment.
package chat

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/AlltidSemester1337/chef-web-backend/internal/chefdb"
	"github.com/AlltidSemester1337/chef-web-backend/internal/session"
)

// Streamer produces the model's answer to a question as a sequence of
// text fragments, given the prior turns of the conversation.
type Streamer interface {
	Stream(ctx context.Context, history []chefdb.ChatTurn, question string) iter.Seq2[string, error]
}

// ChatLog persists completed turns.
type ChatLog interface {
	Append(ctx context.Context, uid string, question string, answer string) error
}

// Orchestrator runs the submit-stream-persist state machine for one
// question. One turn is active at a time per session.
type Orchestrator struct {
	streamer Streamer
	log      ChatLog
}

func NewOrchestrator(streamer Streamer, log ChatLog) *Orchestrator {
	return &Orchestrator{
		streamer: streamer,
		log:      log,
	}
}

// Ask captures the question as a new turn with an empty answer, then
// streams the model's response. Fragments are delivered in arrival
// order on the returned channel, which is closed when the stream ends;
// the error channel then yields the terminal result. The turn's answer
// in the session grows with every fragment, and whatever accumulated
// before a failure stays visible. A completed non-empty turn is
// appended to the durable chat log; a persistence failure is logged and
// the in-memory history stays authoritative for the session.
func (o *Orchestrator) Ask(ctx context.Context, sess *session.Session, question string) (<-chan string, <-chan error) {
	fragments := make(chan string)
	result := make(chan error, 1)

	history := sess.History()
	sess.BeginTurn(question)

	go func() {
		defer close(fragments)
		answer := ""
		for fragment, err := range o.streamer.Stream(ctx, history, question) {
			if err != nil {
				result <- fmt.Errorf("chat: streaming answer: %w", err)
				return
			}
			answer += fragment
			sess.AppendFragment(fragment)
			select {
			case fragments <- fragment:
			case <-ctx.Done():
				result <- ctx.Err()
				return
			}
		}
		if question != "" && answer != "" {
			if err := o.log.Append(ctx, sess.User.UID, question, answer); err != nil {
				slog.ErrorContext(ctx, "chat: saving chat history", "error", err, "uid", sess.User.UID)
			}
		}
		result <- nil
	}()

	return fragments, result
}
