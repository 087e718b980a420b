package pool

import (
	"errors"
	"sync"
)

var (
	ErrQueueFull = errors.New("pool queue is full")
	ErrClosed    = errors.New("pool is closed")
)

type Task func()

// Pool runs submitted tasks on a fixed number of goroutines. Submit never
// blocks: tasks wait in a bounded queue until a worker is free.
type Pool struct {
	numWorkers int
	tasks      chan Task
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewPool(numWorkers, queueSize int) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan Task, queueSize),
	}
}

func (p *Pool) Start() {
	for range p.numWorkers {
		p.wg.Go(func() {
			for task := range p.tasks {
				task()
			}
		})
	}
}

func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks and waits for queued and running ones.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}
