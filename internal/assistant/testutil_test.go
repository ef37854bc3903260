package assistant

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sivajik34/aifastcommerce/internal/agent"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// fakeRuntime plays back a canned event stream and records its inputs.
type fakeRuntime struct {
	mu     sync.Mutex
	events []agent.Event
	err    error
	inputs []agent.Input
}

func (f *fakeRuntime) Run(_ context.Context, _ uuid.UUID, in agent.Input) (<-chan agent.Event, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	ch := make(chan agent.Event, len(f.events)+1)
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

type memSessions struct {
	mu sync.Mutex
	m  map[uuid.UUID]*domain.ChatSession
}

func newMemSessions() *memSessions {
	return &memSessions{m: map[uuid.UUID]*domain.ChatSession{}}
}

func (s *memSessions) Create(_ context.Context, session *domain.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[session.ID]; exists {
		return domain.ErrConflict
	}
	clone := *session
	s.m[session.ID] = &clone
	return nil
}

func (s *memSessions) GetByID(_ context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, found := s.m[id]
	if !found {
		return nil, domain.ErrNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *memSessions) UpdateStatus(_ context.Context, id uuid.UUID, status domain.SessionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, found := s.m[id]
	if !found {
		return domain.ErrNotFound
	}
	session.Status = status
	return nil
}

func (s *memSessions) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.m[id]; !found {
		return domain.ErrNotFound
	}
	delete(s.m, id)
	return nil
}

func (s *memSessions) List(_ context.Context) ([]domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatSession, 0, len(s.m))
	for _, session := range s.m {
		out = append(out, *session)
	}
	return out, nil
}

type memInterrupts struct {
	mu       sync.Mutex
	pending  map[uuid.UUID]*domain.Interrupt
	resolved []domain.DecisionType
}

func newMemInterrupts() *memInterrupts {
	return &memInterrupts{pending: map[uuid.UUID]*domain.Interrupt{}}
}

func (r *memInterrupts) Create(_ context.Context, i *domain.Interrupt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pending[i.SessionID]; exists {
		return domain.ErrInterruptPending
	}
	clone := *i
	r.pending[i.SessionID] = &clone
	return nil
}

func (r *memInterrupts) GetPending(_ context.Context, sessionID uuid.UUID) (*domain.Interrupt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, found := r.pending[sessionID]
	if !found {
		return nil, domain.ErrNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *memInterrupts) Resolve(_ context.Context, sessionID uuid.UUID, decision domain.DecisionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.pending[sessionID]; !found {
		return domain.ErrNotFound
	}
	delete(r.pending, sessionID)
	r.resolved = append(r.resolved, decision)
	return nil
}

func (r *memInterrupts) CancelPending(_ context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.pending[sessionID]; !found {
		return domain.ErrNotFound
	}
	delete(r.pending, sessionID)
	return nil
}

type memCheckpoints struct {
	mu sync.Mutex
	m  map[uuid.UUID]*domain.Checkpoint
}

func newMemCheckpoints() *memCheckpoints {
	return &memCheckpoints{m: map[uuid.UUID]*domain.Checkpoint{}}
}

func (r *memCheckpoints) Save(_ context.Context, cp *domain.Checkpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *cp
	r.m[cp.SessionID] = &clone
	return nil
}

func (r *memCheckpoints) Load(_ context.Context, sessionID uuid.UUID) (*domain.Checkpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp, found := r.m[sessionID]
	if !found {
		return nil, domain.ErrNotFound
	}
	clone := *cp
	return &clone, nil
}

func (r *memCheckpoints) Delete(_ context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, sessionID)
	return nil
}

type capturingNotifier struct {
	mu    sync.Mutex
	cards []*InterruptCard
}

func (n *capturingNotifier) NotifyInterrupt(_ context.Context, _ uuid.UUID, card *InterruptCard) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cards = append(n.cards, card)
	return nil
}
