// Package scheduler runs tasks one at a time, in the order they were scheduled.
package scheduler

import (
	"errors"
	"sync"

	"github.com/tliron/commonlog"
)

var (
	ErrStopped   = errors.New("scheduler stopped")
	ErrQueueFull = errors.New("task queue is full")
)

type Task struct {
	Name    string
	Execute func() error
}

type Scheduler struct {
	mu        sync.Mutex
	stopped   bool
	taskQueue chan Task
	done      chan struct{}
	log       commonlog.Logger
}

// NewScheduler creates a new Scheduler with the specified queue size
func NewScheduler(queueSize int) *Scheduler {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Scheduler{
		taskQueue: make(chan Task, queueSize),
		done:      make(chan struct{}),
		log:       commonlog.GetLogger("wordcomplete.scheduler"),
	}
}

// Run starts the worker. Tasks run sequentially on a single goroutine.
func (s *Scheduler) Run() {
	go func() {
		defer close(s.done)
		for task := range s.taskQueue {
			s.execute(task)
		}
	}()
}

func (s *Scheduler) execute(task Task) {
	s.log.Debugf("executing %s task", task.Name)
	if err := task.Execute(); err != nil {
		s.log.Warningf("task %s failed: %s", task.Name, err.Error())
	}
}

// Schedule queues a task without blocking. It fails with ErrQueueFull when
// the queue has no room and with ErrStopped after Stop.
func (s *Scheduler) Schedule(task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	select {
	case s.taskQueue <- task:
		return nil
	default:
		s.log.Warningf("skipped scheduling %s, queue is full", task.Name)
		return ErrQueueFull
	}
}

// Stop refuses further tasks, runs the ones already queued and waits for the
// worker to exit. Run must have been called.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.stopped = true
	close(s.taskQueue)
	s.mu.Unlock()

	s.log.Debug("stopping scheduler")
	<-s.done
	s.log.Debug("scheduler stopped")
}
