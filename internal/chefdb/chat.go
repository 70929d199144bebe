package chefdb

type ChatRole string

const (
	// ChatRoleUser marks an entry holding the user's question.
	ChatRoleUser ChatRole = "user"
	// ChatRoleModel marks an entry holding the model's answer.
	ChatRoleModel ChatRole = "model"
)

// ChatPart is one text part of a chat history entry.
type ChatPart struct {
	Text string `json:"text"`
}

// ChatEntry is the wire format of a single chat history record under
// users/<uid>/chatHistory. A completed turn is stored as two linked
// entries, role=user followed by role=model.
type ChatEntry struct {
	// Parts holds the text of the entry. Only the first part is used.
	Parts []ChatPart `json:"parts"`

	// Role is the sender of the entry.
	Role ChatRole `json:"role"`
}

// ChatTurn is one question/answer exchange with the model.
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PairTurns reassembles turns from the stored entry sequence. Entries
// are expected in (user, model) pairs in push-key order; a trailing
// unpaired entry or a pair with an empty side is skipped.
func PairTurns(entries []ChatEntry) []ChatTurn {
	turns := make([]ChatTurn, 0, len(entries)/2)
	for i := 0; i+1 < len(entries); i += 2 {
		question := entryText(entries[i])
		answer := entryText(entries[i+1])
		if question == "" || answer == "" {
			continue
		}
		turns = append(turns, ChatTurn{Question: question, Answer: answer})
	}
	return turns
}

func entryText(e ChatEntry) string {
	if len(e.Parts) == 0 {
		return ""
	}
	return e.Parts[0].Text
}
