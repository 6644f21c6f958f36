package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusChecker(t *testing.T) {
	checker := NewStatusChecker("https://org.crm.dynamics.com")
	require.NotNil(t, checker)
	assert.True(t, checker.IsOnline())
	assert.True(t, checker.LastCheck().IsZero())
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok", http.StatusOK, true},
		{"unauthenticated", http.StatusUnauthorized, true},
		{"redirect", http.StatusFound, true},
		{"server error", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			checker := NewStatusChecker(server.URL)
			checker.client.CheckRedirect = func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			}

			assert.Equal(t, tt.want, checker.Check(testContext(t)))
			assert.Equal(t, tt.want, checker.IsOnline())
			assert.False(t, checker.LastCheck().IsZero())
		})
	}
}

func TestCheck_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	checker := NewStatusChecker(url)
	assert.False(t, checker.Check(testContext(t)))
	assert.False(t, checker.IsOnline())
}

func TestCheck_InvalidURL(t *testing.T) {
	checker := NewStatusChecker("://bad")
	assert.False(t, checker.Check(testContext(t)))
}

func TestCheckCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	msg := NewStatusChecker(server.URL).CheckCmd()()
	status, ok := msg.(StatusMsg)
	require.True(t, ok)
	assert.True(t, status.Online)
}

// testContext returns a context canceled when the test finishes, mirroring
// testing.T.Context (Go 1.24+) for older toolchains.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
