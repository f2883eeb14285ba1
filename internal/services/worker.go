package services

import (
	"context"
	"log"
	"sync"
	"time"

	"hired/interview-service/internal/models"
)

// ResultWriter is the persistence side the worker drains into.
type ResultWriter interface {
	Create(result *models.InterviewResult) error
}

type Worker interface {
	ResultSink
	Start(ctx context.Context)
	Stop()
}

type WorkerOptions struct {
	Concurrency   int
	QueueSize     int
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

type worker struct {
	results     ResultWriter
	store       SessionStore
	opts        WorkerOptions
	resultQueue chan *models.InterviewResult
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// NewWorker builds the background worker. results may be nil, in which case
// completed interviews are logged and dropped.
func NewWorker(results ResultWriter, store SessionStore, opts WorkerOptions) Worker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}

	return &worker{
		results:     results,
		store:       store,
		opts:        opts,
		resultQueue: make(chan *models.InterviewResult, opts.QueueSize),
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d result writers", w.opts.Concurrency)

	for i := 0; i < w.opts.Concurrency; i++ {
		w.wg.Add(1)
		go w.processResults(i + 1)
	}

	if w.store != nil && w.opts.SessionTTL > 0 && w.opts.SweepInterval > 0 {
		w.wg.Add(1)
		go w.sweepIdleSessions(ctx)
	}
}

// Stop implements Worker. Queued results are flushed before it returns.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// EnqueueResult implements Worker. It never blocks the request path; when
// the queue is full the result is dropped with a log line.
func (w *worker) EnqueueResult(result *models.InterviewResult) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, dropping result for session %s", result.SessionID)
		return
	default:
	}

	select {
	case w.resultQueue <- result:
		log.Printf("📥 Result for session %s enqueued", result.SessionID)
	default:
		log.Printf("⚠️  Result queue full, dropping result for session %s", result.SessionID)
	}
}

func (w *worker) processResults(workerID int) {
	defer w.wg.Done()

	for {
		select {
		case result := <-w.resultQueue:
			w.persist(workerID, result)
		case <-w.stopChan:
			// Drain whatever is already queued
			for {
				select {
				case result := <-w.resultQueue:
					w.persist(workerID, result)
				default:
					log.Printf("👷 Worker #%d stopped", workerID)
					return
				}
			}
		}
	}
}

func (w *worker) persist(workerID int, result *models.InterviewResult) {
	if w.results == nil {
		log.Printf("⚠️  No result store configured, dropping result for session %s", result.SessionID)
		return
	}

	if err := w.results.Create(result); err != nil {
		log.Printf("❌ Worker #%d failed to persist result for session %s: %v", workerID, result.SessionID, err)
		return
	}

	log.Printf("✅ Worker #%d persisted result for session %s", workerID, result.SessionID)
}

func (w *worker) sweepIdleSessions(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.SweepInterval)
	defer ticker.Stop()

	log.Printf("🔄 Session sweeper started (interval %s, ttl %s)", w.opts.SweepInterval, w.opts.SessionTTL)

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Session sweeper stopped")
			return
		case <-ctx.Done():
			log.Println("🔄 Session sweeper stopped")
			return
		case <-ticker.C:
			if evicted := w.store.EvictIdle(w.opts.SessionTTL); len(evicted) > 0 {
				log.Printf("🧹 Evicted %d idle interview sessions", len(evicted))
			}
		}
	}
}
