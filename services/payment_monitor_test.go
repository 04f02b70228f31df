package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
)

// scriptedRefunder returns the queued errors per payment, then succeeds.
type scriptedRefunder struct {
	mu      sync.Mutex
	results map[uint][]error
	calls   map[uint]int
}

func newScriptedRefunder() *scriptedRefunder {
	return &scriptedRefunder{results: map[uint][]error{}, calls: map[uint]int{}}
}

func (s *scriptedRefunder) InitiateRefund(ctx context.Context, paymentID uint, reason string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[paymentID]++
	if queued := s.results[paymentID]; len(queued) > 0 {
		s.results[paymentID] = queued[1:]
		if queued[0] != nil {
			return nil, queued[0]
		}
	}
	return &models.Payment{ID: paymentID, Status: models.PaymentStatusPendingRefund}, nil
}

func (s *scriptedRefunder) callCount(id uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func TestRefundMonitorEnqueueOncePerPayment(t *testing.T) {
	rm := NewRefundMonitor(newScriptedRefunder(), 0)

	rm.Enqueue(1, "a")
	rm.Enqueue(2, "b")
	rm.Enqueue(1, "again")

	assert.Equal(t, []uint{1, 2}, rm.Pending())
	assert.Equal(t, 5*time.Minute, rm.retryInterval)
}

func TestRefundMonitorProcessQueue(t *testing.T) {
	refunder := newScriptedRefunder()
	refunder.results[1] = []error{errors.New("timeout")}
	refunder.results[2] = []error{ErrInvalidTransition}
	rm := NewRefundMonitor(refunder, time.Minute)
	rm.Enqueue(1, "cancelled")
	rm.Enqueue(2, "cancelled")
	rm.Enqueue(3, "cancelled")

	rm.ProcessQueue(ctxBG)

	assert.Equal(t, []uint{1}, rm.Pending())
	m := rm.GetMetrics()
	assert.Equal(t, int64(3), m.Attempts)
	assert.Equal(t, int64(1), m.Succeeded)
	assert.Equal(t, int64(1), m.Failed)
	assert.Equal(t, int64(1), m.Dropped)

	rm.ProcessQueue(ctxBG)

	assert.Empty(t, rm.Pending())
	assert.Equal(t, int64(2), rm.GetMetrics().Succeeded)
	assert.Equal(t, 2, refunder.callCount(1))
}

func TestRefundMonitorStartRetriesInBackground(t *testing.T) {
	refunder := newScriptedRefunder()
	rm := NewRefundMonitor(refunder, 10*time.Millisecond)
	rm.Enqueue(5, "cancelled")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rm.Start(ctx)

	require.Eventually(t, func() bool {
		return refunder.callCount(5) == 1 && len(rm.Pending()) == 0
	}, time.Second, 5*time.Millisecond)
}
