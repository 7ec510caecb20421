package cascade

import (
	"context"
	"sync"

	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"go.uber.org/zap"
)

type pending struct {
	name string
	fn   func(context.Context)
}

// Hooks collects post-commit side effects of one transaction. Methods are
// safe on a nil receiver: Add does nothing and Run has nothing to run.
type Hooks struct {
	mu      sync.Mutex
	pending []pending
}

// Add queues fn to run after commit
func (h *Hooks) Add(name string, fn func(context.Context)) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, pending{name: name, fn: fn})
}

// Run runs and clears the queued hooks in the order they were added. A
// panicking hook is logged and does not stop the others.
func (h *Hooks) Run(ctx context.Context) {
	for _, p := range h.take() {
		runHook(ctx, p)
	}
}

// Discard drops the queued hooks; used when the transaction rolls back
func (h *Hooks) Discard() {
	h.take()
}

// Len returns the number of queued hooks
func (h *Hooks) Len() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

func (h *Hooks) take() []pending {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.pending
	h.pending = nil
	return out
}

func runHook(ctx context.Context, p pending) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("post-commit hook panicked", zap.String("hook", p.name), zap.Any("panic", r))
		}
	}()
	logger.Log.Debug("post-commit hook", zap.String("hook", p.name))
	p.fn(ctx)
}
