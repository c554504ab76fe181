package testutil

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/preston-bernstein/pl-spend-service/internal/poller"
)

// StubReloader satisfies the server's reloader contract and counts calls.
type StubReloader struct {
	StopErr   error
	StatusVal poller.Status

	starts atomic.Int32
	stops  atomic.Int32
}

func (r *StubReloader) Start(context.Context) { r.starts.Add(1) }

func (r *StubReloader) Stop(context.Context) error {
	r.stops.Add(1)
	return r.StopErr
}

func (r *StubReloader) Status() poller.Status { return r.StatusVal }

func (r *StubReloader) StartCalls() int { return int(r.starts.Load()) }
func (r *StubReloader) StopCalls() int  { return int(r.stops.Load()) }

// StubHTTPServer stands in for a listening server. ListenAndServe returns
// ListenErr immediately. When Block is non-nil Shutdown waits for it to be
// closed or for ctx to end.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	listens   atomic.Int32
	shutdowns atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.listens.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdowns.Add(1)
	if s.Block == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Block:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string          { return s.AddrVal }
func (s *StubHTTPServer) Handler() http.Handler { return s.HandlerVal }

func (s *StubHTTPServer) ListenCalls() int   { return int(s.listens.Load()) }
func (s *StubHTTPServer) ShutdownCalls() int { return int(s.shutdowns.Load()) }
