// Package session holds the client-side conversation mirror.
//
// The backend keeps the authoritative chat history on its side; the mirror
// is a local, append-only duplicate kept for exactly one purpose: feeding
// the token-count request after each exchange. It can drift from the
// backend's context (tool calls and their results are never mirrored) and
// nothing else may depend on it.
package session

// Role attributes a turn to one side of the conversation.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is one message in the conversation. Immutable once appended.
type Turn struct {
	Role Role
	Text string
}

// Mirror is an append-only log of turns plus the last known token estimate.
// It grows by exactly one entry per successful exchange half: the user turn
// unconditionally on input, the agent turn only when the backend returned
// content.
type Mirror struct {
	turns      []Turn
	tokenCount int
}

// NewMirror creates an empty conversation mirror.
func NewMirror() *Mirror {
	return &Mirror{}
}

// AddUser appends a user turn.
func (m *Mirror) AddUser(text string) {
	m.turns = append(m.turns, Turn{Role: RoleUser, Text: text})
}

// AddAgent appends an agent turn.
func (m *Mirror) AddAgent(text string) {
	m.turns = append(m.turns, Turn{Role: RoleAgent, Text: text})
}

// Turns returns a copy of the turn log in order.
func (m *Mirror) Turns() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of appended turns.
func (m *Mirror) Len() int {
	return len(m.turns)
}

// SetTokenCount records the backend's estimate for the current turn log.
func (m *Mirror) SetTokenCount(n int) {
	m.tokenCount = n
}

// TokenCount returns the last recorded estimate. It reflects the
// conversation as of the previous completed exchange.
func (m *Mirror) TokenCount() int {
	return m.tokenCount
}

// EstimateTokens returns a rough local estimate (total chars / 4), used
// only when the backend count is unavailable and no prior count exists.
func (m *Mirror) EstimateTokens() int {
	total := 0
	for _, t := range m.turns {
		total += len(t.Text)
	}
	return total / 4
}
