// Package tasks provides the in-memory store behind the polling API.
// A task is created when a request arrives with polling=true, executed in the
// background with a bounded retry loop, and its result kept around until a
// scheduled cleanup removes it.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Snapshot is a point-in-time copy of a task's state.
type Snapshot struct {
	Status Status
	Result any
	Err    string
}

type task struct {
	status Status
	result any
	err    string
}

// Job is the unit of work executed for a task.
type Job func(ctx context.Context) (any, error)

// Manager owns the task map. All exported methods are safe for concurrent use.
type Manager struct {
	mu    sync.Mutex
	tasks map[string]*task

	maxRetries uint
	retryDelay time.Duration
	log        zerolog.Logger
}

// New builds a Manager. maxRetries is the total number of attempts per task
// (minimum 1); retryDelay is the fixed pause between attempts.
func New(maxRetries int, retryDelay time.Duration, log zerolog.Logger) *Manager {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Manager{
		tasks:      make(map[string]*task),
		maxRetries: uint(maxRetries),
		retryDelay: retryDelay,
		log:        log,
	}
}

// Create registers a new pending task and returns its id.
func (m *Manager) Create() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.tasks[id] = &task{status: StatusPending}
	m.mu.Unlock()
	m.log.Info().Str("task_id", id).Msg("task created")
	return id
}

// Get returns a snapshot of the task, or ok=false if the id is unknown
// (never created or already cleaned up).
func (m *Manager) Get(id string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{Status: t.status, Result: t.result, Err: t.err}, true
}

// Remove drops a task from the store, releasing its result.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	if _, ok := m.tasks[id]; ok {
		delete(m.tasks, id)
		m.log.Info().Str("task_id", id).Msg("task result cleaned up")
	}
	m.mu.Unlock()
}

// ScheduleCleanup removes the task after delay. Non-blocking; the timer does
// not keep the process alive.
func (m *Manager) ScheduleCleanup(id string, delay time.Duration) {
	time.AfterFunc(delay, func() { m.Remove(id) })
	m.log.Info().Str("task_id", id).Dur("delay", delay).Msg("task cleanup scheduled")
}

// Run executes job on behalf of the task, retrying on failure up to the
// configured attempt budget with a fixed delay between attempts. It blocks
// until the task reaches a terminal state; callers typically invoke it in a
// goroutine.
func (m *Manager) Run(ctx context.Context, id string, job Job) {
	m.setStatus(id, StatusProcessing)
	m.log.Info().Str("task_id", id).Msg("task started")

	attempt := 0
	result, err := backoff.Retry(ctx, func() (any, error) {
		attempt++
		out, err := job(ctx)
		if err != nil {
			m.log.Error().Str("task_id", id).Int("attempt", attempt).Err(err).Msg("task attempt failed")
		}
		return out, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(m.retryDelay)),
		backoff.WithMaxTries(m.maxRetries),
	)
	if err != nil {
		m.finish(id, StatusFailed, nil, err.Error())
		m.log.Error().Str("task_id", id).Err(err).Msg("task failed")
		return
	}
	m.finish(id, StatusCompleted, result, "")
	m.log.Info().Str("task_id", id).Int("attempts", attempt).Msg("task completed")
}

func (m *Manager) setStatus(id string, s Status) {
	m.mu.Lock()
	if t, ok := m.tasks[id]; ok {
		t.status = s
	}
	m.mu.Unlock()
}

func (m *Manager) finish(id string, s Status, result any, errMsg string) {
	m.mu.Lock()
	if t, ok := m.tasks[id]; ok {
		t.status = s
		t.result = result
		t.err = errMsg
	}
	m.mu.Unlock()
}

// Len reports the number of live tasks. Used by status reporting and tests.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
