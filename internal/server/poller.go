package server

import (
	"context"

	"github.com/preston-bernstein/pl-spend-service/internal/poller"
)

// Reloader defines the minimal reload loop behavior needed by the server.
type Reloader interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}
