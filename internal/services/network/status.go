// Package network tracks whether the organisation's Web API endpoint can be reached.
package network

import (
	"context"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const checkTimeout = 5 * time.Second

// StatusChecker probes the organisation URL and caches the result
type StatusChecker struct {
	mu        sync.RWMutex
	url       string
	isOnline  bool
	lastCheck time.Time
	client    *http.Client
}

// StatusMsg reports the outcome of a check
type StatusMsg struct {
	Online bool
}

// NewStatusChecker creates a checker for url. Until the first check it reports online.
func NewStatusChecker(url string) *StatusChecker {
	return &StatusChecker{
		url:      url,
		isOnline: true,
		client: &http.Client{
			Timeout: checkTimeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
	}
}

// Check sends a HEAD request to the organisation URL. Any answer below 500
// counts as reachable: an unauthenticated probe is expected to get 401.
func (s *StatusChecker) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		s.setOnline(false)
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.setOnline(false)
		return false
	}
	defer resp.Body.Close()

	online := resp.StatusCode < http.StatusInternalServerError
	s.setOnline(online)
	return online
}

// IsOnline returns the cached status
func (s *StatusChecker) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOnline
}

// LastCheck returns the time of the last check
func (s *StatusChecker) LastCheck() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCheck
}

func (s *StatusChecker) setOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOnline = online
	s.lastCheck = time.Now()
}

// CheckCmd returns a tea.Cmd performing one check
func (s *StatusChecker) CheckCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		return StatusMsg{Online: s.Check(ctx)}
	}
}
