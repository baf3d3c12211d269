// Package service composes the agent backend and the task store into the
// single surface the HTTP layer serves.
package service

import (
	"context"
	"time"

	"agentd/internal/agent"
	"agentd/internal/tasks"
)

// resultTTL is how long a completed or failed task result stays pollable
// after it was first observed.
const resultTTL = time.Hour

// Service implements httpapi.Service.
type Service struct {
	backend agent.Backend
	tasks   *tasks.Manager
	ttl     time.Duration
}

// New wires a backend and a task manager together.
func New(backend agent.Backend, tm *tasks.Manager) *Service {
	return &Service{backend: backend, tasks: tm, ttl: resultTTL}
}

// Ready reports backend readiness.
func (s *Service) Ready() bool { return s.backend.Ready() }

// Execute runs input synchronously.
func (s *Service) Execute(ctx context.Context, input string) (string, error) {
	return s.backend.Execute(ctx, input)
}

// ExecuteAsync creates a task for input and runs it in the background.
// The task outlives the originating request, so it runs on its own context.
func (s *Service) ExecuteAsync(input string) string {
	id := s.tasks.Create()
	go s.tasks.Run(context.Background(), id, func(ctx context.Context) (any, error) {
		return s.backend.Execute(ctx, input)
	})
	return id
}

// TaskStatus returns the task snapshot for id.
func (s *Service) TaskStatus(id string) (tasks.Snapshot, bool) {
	return s.tasks.Get(id)
}

// ScheduleTaskCleanup queues removal of a terminal task's result.
func (s *Service) ScheduleTaskCleanup(id string) {
	s.tasks.ScheduleCleanup(id, s.ttl)
}
