package domain

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one utterance in the session's chat history.
// Turns are append-only until an explicit conversation reset.
type ConversationTurn struct {
	// Role is who produced the turn.
	Role Role

	// Text is the turn content.
	Text string

	// Seq is a logical sequence number, monotonically increasing
	// within a session. It orders turns without relying on wall clocks.
	Seq int
}
