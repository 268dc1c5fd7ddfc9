package ragged

import (
	"sync"

	"github.com/driftlab/ragged/internal/config"
	"github.com/driftlab/ragged/internal/logging"
)

// Executor runs independently submitted units of work. The apply engine is
// written against this contract only: Submit must eventually run the task,
// and tasks must be runnable concurrently. Any implementation satisfying
// that, including remote or process-backed ones, is accepted.
type Executor interface {
	Submit(task func())
}

// PoolConfig contains configuration for a PoolExecutor.
type PoolConfig struct {
	// Workers is the number of worker goroutines.
	Workers int

	// QueueSize is the buffer size of the task queue.
	QueueSize int
}

// DefaultPoolConfig returns a configuration sized from the environment
// (RAGGED_MAX_WORKERS, RAGGED_QUEUE_SIZE) with the host CPU count as
// fallback.
func DefaultPoolConfig() PoolConfig {
	t := config.Load()
	return PoolConfig{
		Workers:   t.MaxWorkers,
		QueueSize: t.QueueSize,
	}
}

// PoolExecutor is a fixed pool of worker goroutines fed from a task queue.
// The caller owns its lifecycle: Start before the first Submit, Stop when
// done. Stop drains the queue and waits for in-flight tasks.
type PoolExecutor struct {
	config PoolConfig
	logger *logging.Logger

	tasks chan func()
	wg    sync.WaitGroup
}

// NewPoolExecutor creates a pool executor.
func NewPoolExecutor(cfg PoolConfig) *PoolExecutor {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultPoolConfig().Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	return &PoolExecutor{
		config: cfg,
		logger: logging.Global(),
		tasks:  make(chan func(), cfg.QueueSize),
	}
}

// Start starts the worker goroutines.
func (p *PoolExecutor) Start() {
	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.runWorker()
	}
	p.logger.Debug("Apply executor started", "workers", p.config.Workers)
}

// Stop drains the queue, waits for in-flight tasks and releases the workers.
// Submit must not be called after Stop.
func (p *PoolExecutor) Stop() {
	close(p.tasks)
	p.wg.Wait()
	p.logger.Debug("Apply executor stopped")
}

// Submit queues a task for execution. It blocks when the queue is full.
func (p *PoolExecutor) Submit(task func()) {
	p.tasks <- task
}

// runWorker is the loop of one worker goroutine.
func (p *PoolExecutor) runWorker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// GoExecutor runs every task on its own goroutine, with no pooling or
// backpressure. It is the unbounded alternative to PoolExecutor for callers
// whose row functions block on external resources.
type GoExecutor struct{}

// Submit implements Executor.
func (GoExecutor) Submit(task func()) {
	go task()
}

// SyncExecutor runs every task inline on the submitting goroutine. It trades
// parallelism for determinism, which is occasionally what a test wants.
type SyncExecutor struct{}

// Submit implements Executor.
func (SyncExecutor) Submit(task func()) {
	task()
}

var (
	defaultPoolOnce sync.Once
	defaultPool     *PoolExecutor
)

// defaultExecutor lazily builds the shared pool used when a caller passes a
// nil executor. It is constructed once, sized by DefaultPoolConfig, and never
// stopped; callers needing lifecycle control supply their own.
func defaultExecutor() Executor {
	defaultPoolOnce.Do(func() {
		defaultPool = NewPoolExecutor(DefaultPoolConfig())
		defaultPool.Start()
	})
	return defaultPool
}
