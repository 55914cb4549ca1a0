// Package signal cancels in-flight scans and batch operations when the
// process receives an interrupt.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler wraps a context and cancels it on SIGINT or SIGTERM so that
// repository walks and git subprocesses stop promptly on Ctrl+C.
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler owns the context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{}
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal
}

// NewHandler starts listening for SIGINT and SIGTERM. The returned
// handler's Context is canceled on the first signal received.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	ctx = h.Context()
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// Buffer of 1 so signal.Notify never drops a signal while the
		// listener goroutine is busy.
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the cancellable context. Pass it to every operation
// that should stop on interrupt.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that closes once an interrupt signal
// has been received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Stop unregisters the signal listener and cancels the context.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

func (h *Handler) handleSignal() {
	h.once.Do(func() {
		h.cancel()
		close(h.interrupted)
	})
}

// listen drains the signal channel until Stop is called or the context
// ends. Only the first signal has effect; later ones are received and
// discarded so delivery never blocks.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case <-h.sigChan:
			h.handleSignal()
		}
	}
}
