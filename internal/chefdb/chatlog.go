package chefdb

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"
)

const (
	usersPath      = "users"
	chatHistoryKey = "chatHistory"
)

// ChatLog persists completed chat turns under users/<uid>/chatHistory.
type ChatLog struct {
	db *db.Client
}

func NewChatLog(client *db.Client) *ChatLog {
	return &ChatLog{
		db: client,
	}
}

func (l *ChatLog) historyRef(uid string) *db.Ref {
	return l.db.NewRef(usersPath + "/" + uid + "/" + chatHistoryKey)
}

// Append durably stores one completed turn as two linked entries,
// role=user then role=model. There is no transaction across the two
// pushes; a failure between them leaves a dangling question entry that
// PairTurns skips on load.
func (l *ChatLog) Append(ctx context.Context, uid string, question string, answer string) error {
	ref := l.historyRef(uid)
	if _, err := ref.Push(ctx, ChatEntry{
		Parts: []ChatPart{{Text: question}},
		Role:  ChatRoleUser,
	}); err != nil {
		return fmt.Errorf("chefdb: appending question entry: %w", err)
	}
	if _, err := ref.Push(ctx, ChatEntry{
		Parts: []ChatPart{{Text: answer}},
		Role:  ChatRoleModel,
	}); err != nil {
		return fmt.Errorf("chefdb: appending answer entry: %w", err)
	}
	return nil
}

// History loads the user's persisted turns in chronological order.
// A user with no history gets an empty slice.
func (l *ChatLog) History(ctx context.Context, uid string) ([]ChatTurn, error) {
	nodes, err := l.historyRef(uid).OrderByKey().GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("chefdb: loading chat history: %w", err)
	}
	entries := make([]ChatEntry, 0, len(nodes))
	for _, node := range nodes {
		var entry ChatEntry
		if err := node.Unmarshal(&entry); err != nil {
			return nil, fmt.Errorf("chefdb: decoding chat entry %s: %w", node.Key(), err)
		}
		entries = append(entries, entry)
	}
	return PairTurns(entries), nil
}
