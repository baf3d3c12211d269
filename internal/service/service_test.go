package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentd/internal/tasks"
)

type fakeBackend struct {
	ready bool
	out   string
	err   error
}

func (f *fakeBackend) Ready() bool { return f.ready }
func (f *fakeBackend) Execute(context.Context, string) (string, error) {
	return f.out, f.err
}

func newTestService(b *fakeBackend) *Service {
	return New(b, tasks.New(1, time.Millisecond, zerolog.Nop()))
}

func TestReadyDelegates(t *testing.T) {
	s := newTestService(&fakeBackend{ready: true})
	assert.True(t, s.Ready())
}

func TestExecuteSync(t *testing.T) {
	s := newTestService(&fakeBackend{ready: true, out: "result"})
	out, err := s.Execute(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "result", out)
}

func TestExecuteAsyncCompletes(t *testing.T) {
	s := newTestService(&fakeBackend{ready: true, out: "deferred"})
	id := s.ExecuteAsync("hi")
	require.NotEmpty(t, id)

	assert.Eventually(t, func() bool {
		snap, ok := s.TaskStatus(id)
		return ok && snap.Status == tasks.StatusCompleted
	}, time.Second, 5*time.Millisecond)

	snap, _ := s.TaskStatus(id)
	assert.Equal(t, "deferred", snap.Result)
}

func TestExecuteAsyncFailure(t *testing.T) {
	s := newTestService(&fakeBackend{ready: true, err: errors.New("nope")})
	id := s.ExecuteAsync("hi")

	assert.Eventually(t, func() bool {
		snap, ok := s.TaskStatus(id)
		return ok && snap.Status == tasks.StatusFailed
	}, time.Second, 5*time.Millisecond)

	snap, _ := s.TaskStatus(id)
	assert.Contains(t, snap.Err, "nope")
}
