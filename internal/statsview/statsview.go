// Package statsview serves live runtime statistics of the emulator process.
package statsview

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

const path = "/debug/statsview"

// Server is a running statistics server.
type Server struct {
	done chan struct{}
}

// Launch starts the statistics server on the given address. The server is
// shut down when the context is cancelled, listen errors are logged.
func Launch(ctx context.Context, logger *log.Logger, addr string) *Server {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	s := &Server{done: make(chan struct{})}

	go func() {
		defer close(s.done)
		if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Stats server failed", log.String("addr", addr), log.Err(err))
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			mgr.Stop()
		case <-s.done:
		}
	}()

	logger.Info("Stats server available", log.String("url", "http://"+addr+path))
	return s
}

// Done returns a channel that is closed once the server stopped.
func (s *Server) Done() <-chan struct{} {
	return s.done
}
