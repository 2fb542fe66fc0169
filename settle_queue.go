package pokerd

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type settleJob func(ctx context.Context, settler Settler) error

/*
settleQueue 依序把結算交給 Settler
  - 在桌次鎖外執行，避免資料庫往返佔住桌次
  - 佇列清空後背景 goroutine 結束，有新工作時再啟動
*/
type settleQueue struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	settler Settler
	timeout time.Duration
	logger  zerolog.Logger
	pending []settleJob
	running bool
}

func newSettleQueue(settler Settler, timeout time.Duration, logger zerolog.Logger) *settleQueue {
	return &settleQueue{
		settler: settler,
		timeout: timeout,
		logger:  logger,
		pending: make([]settleJob, 0),
	}
}

func (q *settleQueue) Push(job settleJob) {
	if q.settler == nil {
		return
	}

	q.mu.Lock()
	q.pending = append(q.pending, job)
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.wg.Add(1)
	q.mu.Unlock()

	go q.drain()
}

// Wait blocks until every pushed job has been delivered.
func (q *settleQueue) Wait() {
	q.wg.Wait()
}

func (q *settleQueue) drain() {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		job := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := job(ctx, q.settler); err != nil {
			q.logger.Error().Err(err).Msg("settlement failed")
		}
		cancel()
	}
}
