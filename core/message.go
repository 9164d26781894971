package core

// Conversation roles understood by every backend adapter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system role message.
func SystemMessage(text string) Message { return Message{Role: RoleSystem, Content: text} }

// UserMessage builds a user role message.
func UserMessage(text string) Message { return Message{Role: RoleUser, Content: text} }

// AssistantMessage builds an assistant role message.
func AssistantMessage(text string) Message { return Message{Role: RoleAssistant, Content: text} }

// CloneMessages returns a copy of msgs that can be appended to without
// touching the caller's backing array.
func CloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs), len(msgs)+4)
	copy(out, msgs)
	return out
}
