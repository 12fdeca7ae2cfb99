package memory

import (
	"context"
	"errors"
	"sync"

	"ai-triage-be/internal/model"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrUnknownSession = errors.New("session: unknown or disconnected session")
	ErrAlreadyRunning = errors.New("session: an analysis is already running on this session")
)

// SessionState is the live context of one connected client.
type SessionState struct {
	ID     uuid.UUID
	Active *model.PipelineExecution
	cancel context.CancelFunc
}

// SessionRegistry tracks one SessionState per connection. All access
// goes through its methods; the mutex makes Begin/Finish/Close
// transitions atomic so a session never holds two active pipelines.
type SessionRegistry struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRegistry() *SessionRegistry {
	// Sessions live exactly as long as their connection, so no
	// expiration and no sweeper.
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRegistry{
		cache: c,
	}
}

// Open allocates a fresh session in the Connected state.
func (r *SessionRegistry) Open() uuid.UUID {
	id := uuid.New()
	r.cache.Set(id.String(), &SessionState{ID: id}, cache.NoExpiration)
	return id
}

// Get returns the session state if the session is connected.
func (r *SessionRegistry) Get(id uuid.UUID) (*SessionState, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*SessionState), true
	}
	return nil, false
}

// Begin attaches a new PipelineExecution to the session and returns
// the context the pipeline must run under. Closing the session
// cancels that context.
func (r *SessionRegistry) Begin(id uuid.UUID) (context.Context, *model.PipelineExecution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.Get(id)
	if !found {
		return nil, nil, ErrUnknownSession
	}
	if state.Active != nil {
		return nil, nil, ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	state.Active = model.NewPipelineExecution(id)
	state.cancel = cancel

	return ctx, state.Active, nil
}

// Finish detaches the pipeline after its terminal event. The session
// itself stays open for further submissions.
func (r *SessionRegistry) Finish(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.Get(id)
	if !found {
		return
	}
	if state.cancel != nil {
		state.cancel()
	}
	state.Active = nil
	state.cancel = nil
}

// Close removes the session and cancels any active pipeline.
// Idempotent: closing an unknown session is a no-op.
func (r *SessionRegistry) Close(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, found := r.Get(id)
	if !found {
		return
	}
	if state.cancel != nil {
		state.cancel()
	}
	r.cache.Delete(id.String())
}

// Count reports how many sessions are connected.
func (r *SessionRegistry) Count() int {
	return r.cache.ItemCount()
}
