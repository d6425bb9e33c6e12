// Package stream implements the byte-stream demultiplexer: line
// splitting, record classification, non-destructive fan-out to
// console/target/log/exec/notify/status observers, request correlation
// against the dispatcher's pending-request queue, and extraction of
// embedded out-of-band events from the console stream.
package stream

import (
	"log/slog"
	"sync"
)

const defaultSubscriberBuffer = 64

// Bus is a non-blocking, multi-observer fan-out channel. Every Subscribe
// call gets its own independent, buffered channel; Publish never blocks
// on a slow subscriber — a full subscriber channel drops that message and
// logs a warning instead of back-pressuring the demultiplexer goroutine
// that owns the FIFO queue.
type Bus[T any] struct {
	mu     sync.Mutex
	subs   []chan T
	logger *slog.Logger
	name   string
}

// NewBus creates a Bus. A nil logger defaults to slog.Default().
func NewBus[T any](name string, logger *slog.Logger) *Bus[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus[T]{logger: logger, name: name}
}

// Subscribe returns a new receive-only channel that will observe every
// value published from this point on.
func (b *Bus[T]) Subscribe() <-chan T {
	ch := make(chan T, defaultSubscriberBuffer)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish fans v out to every current subscriber, non-blocking.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	subs := make([]chan T, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- v:
		default:
			b.logger.Warn("stream: subscriber channel full, dropping message", "bus", b.name)
		}
	}
}

// Close closes every subscriber channel and forgets them. Safe to call
// once, typically when the underlying subprocess has terminated.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()
	for _, ch := range subs {
		close(ch)
	}
}
