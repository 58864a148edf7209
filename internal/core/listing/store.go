// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/yomishelf/internal/platform/apperr"
)

// # Listing Session Storage

// SessionRepository persists listing [State] between requests.
//
// A stored session lives until it is deleted or expires; expiry is the
// listing's "unmount".
type SessionRepository interface {

	/*
		Get returns the state of a listing session.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - State: Stored state
		  - error: apperr NOT_FOUND if missing or expired
	*/
	Get(context context.Context, id string) (State, error)

	/*
		Save writes the state and restarts its expiry.

		Parameters:
		  - context: context.Context
		  - state: State

		Returns:
		  - error: Storage failures
	*/
	Save(context context.Context, state State) error

	// Delete discards the session. Deleting a missing session is not an error.
	Delete(context context.Context, id string) error
}

// errSessionNotFound is returned for unknown or expired listing sessions.
func errSessionNotFound() *apperr.AppError {
	return apperr.NotFound("Listing")
}

// MemorySessionRepository keeps sessions in process memory.
//
// It backs single-instance deployments and tests. It is safe for concurrent use.
type MemorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

type memorySession struct {
	state   State
	expires time.Time
}

// NewMemorySessionRepository constructs an in-memory session store whose
// sessions expire after ttl of inactivity.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

// Get implements [SessionRepository].
func (repository *MemorySessionRepository) Get(_ context.Context, id string) (State, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	session, ok := repository.sessions[id]
	if !ok {
		return State{}, errSessionNotFound()
	}
	if !repository.now().Before(session.expires) {
		delete(repository.sessions, id)
		return State{}, errSessionNotFound()
	}
	return session.state, nil
}

// Save implements [SessionRepository].
func (repository *MemorySessionRepository) Save(_ context.Context, state State) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.sessions[state.ID] = memorySession{
		state:   state,
		expires: repository.now().Add(repository.ttl),
	}
	return nil
}

// Delete implements [SessionRepository].
func (repository *MemorySessionRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.sessions, id)
	return nil
}
