package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

// RefundMetrics menyimpan metrik retry refund
type RefundMetrics struct {
	Attempts  int64 `json:"attempts"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

type refunder interface {
	InitiateRefund(ctx context.Context, paymentID uint, reason string) (*models.Payment, error)
}

type refundJob struct {
	paymentID uint
	reason    string
}

// RefundMonitor mencoba ulang refund yang gagal dimulai saat pembatalan booking.
type RefundMonitor struct {
	refunds       refunder
	metrics       RefundMetrics
	retryQueue    []refundJob
	retryInterval time.Duration
	mutex         sync.Mutex
}

// NewRefundMonitor membuat instance baru RefundMonitor
func NewRefundMonitor(refunds refunder, interval time.Duration) *RefundMonitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RefundMonitor{
		refunds:       refunds,
		retryQueue:    make([]refundJob, 0),
		retryInterval: interval,
	}
}

// Start memulai goroutine retry sampai ctx selesai
func (rm *RefundMonitor) Start(ctx context.Context) {
	go rm.run(ctx)
	utils.InfoLogger.Infof("Refund monitor started (interval %s)", rm.retryInterval)
}

// Enqueue menambahkan payment ID ke antrian retry, sekali saja per payment
func (rm *RefundMonitor) Enqueue(paymentID uint, reason string) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	for _, job := range rm.retryQueue {
		if job.paymentID == paymentID {
			return
		}
	}
	rm.retryQueue = append(rm.retryQueue, refundJob{paymentID: paymentID, reason: reason})
	utils.InfoLogger.Infof("Added payment %d to refund retry queue", paymentID)
}

// Pending returns the payment ids waiting for a retry.
func (rm *RefundMonitor) Pending() []uint {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	ids := make([]uint, len(rm.retryQueue))
	for i, job := range rm.retryQueue {
		ids[i] = job.paymentID
	}
	return ids
}

func (rm *RefundMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(rm.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.InfoLogger.Info("Refund monitor stopped")
			return
		case <-ticker.C:
			rm.ProcessQueue(ctx)
		}
	}
}

// ProcessQueue drains the queue once. Refunds that still fail go back in.
func (rm *RefundMonitor) ProcessQueue(ctx context.Context) {
	rm.mutex.Lock()
	if len(rm.retryQueue) == 0 {
		rm.mutex.Unlock()
		return
	}
	queue := rm.retryQueue
	rm.retryQueue = make([]refundJob, 0)
	rm.mutex.Unlock()

	utils.InfoLogger.Infof("Processing refund retry queue with %d payments", len(queue))
	for _, job := range queue {
		rm.retry(ctx, job)
	}
}

func (rm *RefundMonitor) retry(ctx context.Context, job refundJob) {
	rm.count(func(m *RefundMetrics) { m.Attempts++ })

	_, err := rm.refunds.InitiateRefund(ctx, job.paymentID, job.reason)
	switch {
	case err == nil:
		rm.count(func(m *RefundMetrics) { m.Succeeded++ })
		refundRetries.WithLabelValues("succeeded").Inc()
		utils.InfoLogger.Infof("Refund for payment %d started on retry", job.paymentID)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNotFound):
		// payment moved on (refunded by hand, failed, removed); nothing left to retry
		rm.count(func(m *RefundMetrics) { m.Dropped++ })
		refundRetries.WithLabelValues("dropped").Inc()
		utils.ErrorLogger.Warnf("Dropping refund retry for payment %d: %v", job.paymentID, err)
	default:
		rm.count(func(m *RefundMetrics) { m.Failed++ })
		refundRetries.WithLabelValues("failed").Inc()
		utils.ErrorLogger.Errorf("Refund retry for payment %d failed: %v", job.paymentID, err)
		rm.Enqueue(job.paymentID, job.reason)
	}
}

func (rm *RefundMonitor) count(fn func(m *RefundMetrics)) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()
	fn(&rm.metrics)
}

// GetMetrics mengembalikan metrik retry saat ini
func (rm *RefundMonitor) GetMetrics() RefundMetrics {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	return rm.metrics
}
