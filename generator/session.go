package generator

import (
	"context"
	"sync"
)

// PreviewLength is the rune limit of history previews.
const PreviewLength = 100

// Record is one history entry as shown to the teacher.
type Record struct {
	Timestamp string `json:"timestamp"`
	Grade     string `json:"grade"`
	Original  string `json:"original"`
	Adapted   string `json:"adapted"`
}

// Session is caller-owned state for one teacher: the current result and the
// history of earlier adaptations. Safe for concurrent use.
type Session struct {
	ID string

	mu      sync.Mutex
	current *Adaptation
	history []Record
	agent   *Agent
}

// NewSession creates an empty session bound to agent.
func NewSession(id string, agent *Agent) *Session {
	return &Session{ID: id, agent: agent}
}

// Adapt runs one adaptation and records it in the history.
func (s *Session) Adapt(ctx context.Context, text string, opts Options, model string) (Adaptation, error) {
	res, err := s.agent.Adapt(ctx, text, opts, model)
	if err != nil {
		return Adaptation{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &res
	s.history = append(s.history, newRecord(res))
	return res, nil
}

// Current returns the latest adaptation, if any.
func (s *Session) Current() (Adaptation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Adaptation{}, false
	}
	return *s.current, true
}

// Clear drops the current adaptation and questions; history is kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// History returns all records, oldest first.
func (s *Session) History() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.history...)
}

// Recent returns up to n records, newest first.
func (s *Session) Recent(n int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}
	out := make([]Record, 0, n)
	for i := len(s.history) - 1; i >= len(s.history)-n; i-- {
		out = append(out, s.history[i])
	}
	return out
}

func newRecord(a Adaptation) Record {
	return Record{
		Timestamp: a.CreatedAt.Format("2006-01-02 15:04"),
		Grade:     a.Grade.String(),
		Original:  Preview(a.Original, PreviewLength),
		Adapted:   Preview(a.Adapted, PreviewLength),
	}
}
