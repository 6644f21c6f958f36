// Package webapitest provides an in-memory webapi.Retriever for tests.
package webapitest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/riordanpawley/laneboard/internal/services/webapi"
)

// HandlerFunc answers a request with a JSON body or an error
type HandlerFunc func(req webapi.Request) (string, error)

// Fake is a webapi.Retriever that records requests and answers from a handler
type Fake struct {
	mu       sync.Mutex
	handler  HandlerFunc
	requests []webapi.Request
}

// New creates a fake answering with h
func New(h HandlerFunc) *Fake {
	return &Fake{handler: h}
}

// Routes creates a fake answering each resource kind with a fixed body.
// Unknown kinds fail with an error.
func Routes(bodies map[webapi.ResourceKind]string) *Fake {
	return New(func(req webapi.Request) (string, error) {
		body, ok := bodies[req.Kind]
		if !ok {
			return "", fmt.Errorf("no route for %s", req.Kind)
		}
		return body, nil
	})
}

// SetHandler replaces the handler
func (f *Fake) SetHandler(h HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = h
}

// Retrieve implements webapi.Retriever
func (f *Fake) Retrieve(ctx context.Context, req webapi.Request, out any) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	h := f.handler
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := h(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

// Requests returns a copy of the recorded requests
func (f *Fake) Requests() []webapi.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]webapi.Request(nil), f.requests...)
}

// Count returns how many requests of the given kind were made
func (f *Fake) Count(kind webapi.ResourceKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Kind == kind {
			n++
		}
	}
	return n
}
