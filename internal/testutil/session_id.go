package testutil

// FixedSessionIDs returns the same session id every time.
//
// Sessions log under this id, so tests comparing captured log output get
// identical lines across runs.
//
// Thread-safety: FixedSessionIDs is stateless and safe for concurrent use.
type FixedSessionIDs struct {
	id string
}

// NewFixedSessionIDs creates a generator for id.
// If id is empty, Generate() returns "test-session-default".
func NewFixedSessionIDs(id string) *FixedSessionIDs {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSessionIDs{id: id}
}

// Generate returns the fixed id.
//
// Implements session.IDGenerator.
func (g *FixedSessionIDs) Generate() string {
	return g.id
}
