// Package payment schedules the simulated gateway confirmation: a deferred
// completion task on a cancellable timer keyed by booking id. There is no
// external callback; completion is unconditional once the delay elapses.
package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
)

type Completer interface {
	Complete(ctx context.Context, bookingID uuid.UUID) error
}

type Scheduler struct {
	mu        sync.Mutex
	timers    map[uuid.UUID]*time.Timer
	delay     time.Duration
	completer Completer
	logger    observability.Logger
}

func NewScheduler(completer Completer, delay time.Duration, logger observability.Logger) *Scheduler {
	return &Scheduler{
		timers:    make(map[uuid.UUID]*time.Timer),
		delay:     delay,
		completer: completer,
		logger:    logger,
	}
}

// Schedule arms a completion timer for the booking. The task runs detached
// from the request that armed it: the caller navigating away does not cancel
// a pending completion.
func (s *Scheduler) Schedule(bookingID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.timers[bookingID]; exists {
		return
	}
	s.timers[bookingID] = time.AfterFunc(s.delay, func() {
		s.fire(bookingID)
	})
}

// Cancel disarms a pending completion. It reports whether a timer was still
// armed.
func (s *Scheduler) Cancel(bookingID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[bookingID]
	if !ok {
		return false
	}
	delete(s.timers, bookingID)
	return timer.Stop()
}

// Stop disarms every pending timer. Bookings whose completion never ran stay
// pending.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) fire(bookingID uuid.UUID) {
	s.mu.Lock()
	delete(s.timers, bookingID)
	s.mu.Unlock()

	start := time.Now()
	if err := s.completer.Complete(context.Background(), bookingID); err != nil {
		s.logger.WithField("booking_id", bookingID.String()).Error("payment completion failed", err)
		return
	}
	observability.PaymentCompletionLag.Observe(time.Since(start).Seconds() + s.delay.Seconds())
}
