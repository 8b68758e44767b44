// Package compilesvc runs the compiler pipeline as an asynchronous job
// queue: submit returns immediately with a job id, a single background
// worker drains the queue, and callers poll for the result.
package compilesvc

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/compiler/pipeline"
	"github.com/rs/zerolog"
)

// Status is a job's lifecycle state.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Request describes one compile job: architecture, program and pipeline
// options mirroring the CLI flags.
type Request struct {
	Nx, Ny, Nc, Nr int
	NQubit         int
	Program        model.Program
	Options        pipeline.Options
}

// Job is the stored state of one submitted request.
type Job struct {
	ID     string
	Status Status
	Result *pipeline.Result
	Err    string
}

type jobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*Job)}
}

func (s *jobStore) put(j *Job) {
	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()
}

func (s *jobStore) get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

func (s *jobStore) update(id string, mutate func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		mutate(j)
	}
}

// task pairs a job id with the request that produced it, so the worker
// never has to reverse-engineer which job a queued request belongs to.
type task struct {
	id  string
	req Request
}

// Service owns the job store and the single background worker.
type Service struct {
	store *jobStore
	queue chan task
	log   zerolog.Logger
}

// New returns a Service with a queue of the given buffer size and starts
// its single background worker.
func New(log zerolog.Logger, queueSize int) *Service {
	s := &Service{
		store: newJobStore(),
		queue: make(chan task, queueSize),
		log:   log.With().Str("service", "compilesvc").Logger(),
	}
	go s.drain()
	return s
}

// Submit validates the request shape, assigns a job id, enqueues it and
// returns the id without waiting for the compile; the call blocks while
// the job queue's buffer is full.
func (s *Service) Submit(req Request) (string, error) {
	if req.Nx <= 0 || req.Ny <= 0 {
		return "", fmt.Errorf("compilesvc: architecture dimensions must be positive")
	}
	if req.NQubit <= 0 {
		req.NQubit = req.Program.NumQubits()
	}
	if req.Nc <= 0 {
		req.Nc = req.Nx
	}
	if req.Nr <= 0 {
		req.Nr = req.Ny
	}

	id := uuid.New().String()
	s.store.put(&Job{ID: id, Status: StatusQueued})
	s.queue <- task{id: id, req: req}
	return id, nil
}

// Get returns the current state of a job.
func (s *Service) Get(id string) (*Job, bool) {
	return s.store.get(id)
}

func (s *Service) drain() {
	for t := range s.queue {
		s.runJob(t.id, t.req)
	}
}

func (s *Service) runJob(id string, req Request) {
	s.store.update(id, func(j *Job) { j.Status = StatusRunning })

	p := pipeline.New(s.log)
	p.SetArchitecture(req.Nx, req.Ny, req.Nc, req.Nr)
	p.SetProgram(req.Program, req.NQubit)

	result, err := p.Solve(req.Options)
	s.store.update(id, func(j *Job) {
		if err != nil {
			j.Status = StatusFailed
			j.Err = err.Error()
			return
		}
		j.Status = StatusDone
		j.Result = result
	})
}
