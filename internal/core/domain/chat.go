package domain

// ChatRole identifies who authored a turn in a conversation history.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of prior conversation passed through to a text
// backend unmodified.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// TextReply is the normalized response shape shared by all text backends.
type TextReply struct {
	Text       string `json:"text"`
	TokensUsed int    `json:"tokensUsed"`
}
