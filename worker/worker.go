package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/movesim/oerror"
	"github.com/sirupsen/logrus"
)

// Pool runs submitted functions on a fixed number of goroutines. A function that panics is reported to Sentry
// and the worker running it carries on with the next one.
type Pool struct {
	queue chan func()
	log   logrus.FieldLogger

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts a pool with the given number of workers. If workers is zero or less, one worker per CPU is started.
func New(workers int, log logrus.FieldLogger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := &Pool{queue: make(chan func(), workers), log: log}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for f := range p.queue {
		p.run(f)
	}
}

func (p *Pool) run(f func()) {
	defer func() {
		if v := recover(); v != nil {
			p.log.Errorf("worker job crashed: %v", v)
			sentry.CurrentHub().Clone().Recover(oerror.New("worker job crashed: %v", v))
		}
	}()
	f()
}

// Submit queues f to be run by a worker. It blocks while all workers are busy and the queue is full. To be used
// by functions that may be CPU intensive.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// Close stops accepting work and waits for queued functions to finish.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}
