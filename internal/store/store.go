// Package store holds the board state. Dispatch is the only way to change it.
package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// Store is a mutex-guarded container for State
type Store struct {
	mu      sync.RWMutex
	state   State
	changes chan struct{}
	logger  *slog.Logger
}

// New creates a store holding the initial state
func New(logger *slog.Logger) *Store {
	return &Store{
		state:   NewState(),
		changes: make(chan struct{}, 1),
		logger:  logger,
	}
}

// State returns a snapshot of the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies an action. Stale board data is dropped and reported with
// domain.ErrStaleResult.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	if data, ok := a.(SetBoardData); ok && data.Generation != s.state.Generation {
		latest := s.state.Generation
		s.mu.Unlock()
		s.logger.Debug("discarding stale board data", "generation", data.Generation, "latest", latest)
		return fmt.Errorf("generation %d, latest %d: %w", data.Generation, latest, domain.ErrStaleResult)
	}
	s.state = Reduce(s.state, a)
	s.mu.Unlock()

	s.logger.Debug("dispatched", "action", fmt.Sprintf("%T", a))
	s.notify()
	return nil
}

// NextGeneration issues a new board data generation. Results tagged with any
// earlier generation are stale from now on.
func (s *Store) NextGeneration() uint64 {
	s.mu.Lock()
	s.state = Reduce(s.state, issueGeneration{})
	gen := s.state.Generation
	s.mu.Unlock()
	return gen
}

// Changes returns a channel that receives after state changes. Notifications
// coalesce: a reader that falls behind sees one pending signal, not one per change.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
