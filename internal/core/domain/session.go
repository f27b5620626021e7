package domain

import "sync"

// Session is the aggregate for one interactive user: the current document
// set and the conversation history. The vector index is owned by the
// services layer and cleared in lockstep with ClearDocuments.
//
// One Session per user context; the CLI holds a single instance per
// process. All methods are safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	documents []SourceDocument
	turns     []ConversationTurn
	nextSeq   int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// AddDocument records a successfully ingested source. Re-ingesting a
// source of the same name replaces its record in place rather than
// duplicating it.
func (s *Session) AddDocument(doc SourceDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].Name == doc.Name {
			s.documents[i] = doc
			return
		}
	}
	s.documents = append(s.documents, doc)
}

// Documents returns a copy of the ingested document records.
func (s *Session) Documents() []SourceDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SourceDocument, len(s.documents))
	copy(out, s.documents)
	return out
}

// ClearDocuments drops all document records. The conversation history
// is untouched; document reset is independent from conversation reset.
func (s *Session) ClearDocuments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = nil
}

// AppendTurn appends a conversation turn and returns it with its
// assigned sequence number.
func (s *Session) AppendTurn(role Role, text string) ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn := ConversationTurn{Role: role, Text: text, Seq: s.nextSeq}
	s.nextSeq++
	s.turns = append(s.turns, turn)
	return turn
}

// Turns returns a copy of the full conversation history in order.
func (s *Session) Turns() []ConversationTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// RecentTurns returns a copy of the most recent n turns, oldest first.
// n <= 0 returns nil.
func (s *Session) RecentTurns(n int) []ConversationTurn {
	if n <= 0 {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]ConversationTurn, len(s.turns)-start)
	copy(out, s.turns[start:])
	return out
}

// ResetConversation truncates the turn sequence to empty. The document
// set and sequence counter are untouched, so turns appended after a
// reset still order after the discarded ones.
func (s *Session) ResetConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
