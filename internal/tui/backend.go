package tui

import (
	"context"

	"github.com/PraveshMalvi/buyora/internal/schedule"
	"github.com/PraveshMalvi/buyora/internal/session"
)

// Command mutates a session. A nil Command only reads the snapshot.
type Command func(s *session.Session) error

// Backend runs commands against a session and returns its view afterwards.
type Backend interface {
	Do(ctx context.Context, name string, cmd Command) (session.Snapshot, error)
}

// LoopBackend runs commands as tasks on a schedule.Loop. It is the backend
// for a live session whose timers fire on the same loop.
type LoopBackend struct {
	loop    *schedule.Loop
	session *session.Session
}

// NewLoopBackend creates a backend for a session owned by loop.
func NewLoopBackend(loop *schedule.Loop, s *session.Session) *LoopBackend {
	return &LoopBackend{loop: loop, session: s}
}

// Do implements Backend.
func (b *LoopBackend) Do(ctx context.Context, name string, cmd Command) (session.Snapshot, error) {
	var (
		snap   session.Snapshot
		cmdErr error
	)
	err := b.loop.Call(ctx, name, func() {
		if cmd != nil {
			cmdErr = cmd(b.session)
		}
		snap = b.session.View()
	})
	if err != nil {
		return session.Snapshot{}, err
	}
	return snap, cmdErr
}

// DirectBackend runs commands on the calling goroutine. The caller must
// guarantee nothing else touches the session, e.g. by driving it from a
// schedule.Virtual clock.
type DirectBackend struct {
	Session *session.Session
}

// Do implements Backend.
func (b DirectBackend) Do(_ context.Context, _ string, cmd Command) (session.Snapshot, error) {
	var err error
	if cmd != nil {
		err = cmd(b.Session)
	}
	return b.Session.View(), err
}
