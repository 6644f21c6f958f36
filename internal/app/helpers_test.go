package app

import (
	"context"
	"strings"
	"testing"
)

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// testContext returns a context canceled when the test finishes, mirroring
// testing.T.Context (Go 1.24+) for older toolchains.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
