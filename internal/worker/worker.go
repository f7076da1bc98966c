package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrStopped 池已停止，不再接受工作
var ErrStopped = errors.New("worker pool stopped")

// ErrQueueFull 佇列已滿，工作被丟棄
var ErrQueueFull = errors.New("worker queue full")

// Task 由池執行的背景工作，ctx 在 Stop 後取消
type Task func(ctx context.Context)

// Pool 非同步執行 fire-and-forget 工作
type Pool interface {
	Submit(name string, t Task) error
	Stop()
}

// NewPool 建立 n 個 worker 的池，n<=0 時為 1
func NewPool(n int, logger *zap.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{
		jobs:   make(chan job, n*16),
		ctx:    ctx,
		cancel: cancel,
		logger: logger.Named("worker"),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

type job struct {
	name string
	task Task
}

type pool struct {
	jobs    chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
}

func (p *pool) run() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.exec(j)
	}
}

func (p *pool) exec(j job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", zap.String("task", j.name), zap.Any("panic", r))
		}
	}()
	j.task(p.ctx)
}

// Submit 排入工作，佇列滿時立即回傳 ErrQueueFull，不阻塞呼叫端
func (p *pool) Submit(name string, t Task) error {
	if t == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- job{name: name, task: t}:
		return nil
	default:
		p.logger.Warn("queue full, task dropped", zap.String("task", name))
		return ErrQueueFull
	}
}

// Stop 等待已排入的工作完成
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}
