// Package watch monitors the whole process for panics, including panics on
// goroutines that no deferred recover can reach.
//
// Run re-executes the current binary as a child and watches its stderr. The
// parent hands every panic it sees to a hook, then exits with the child's
// status. The child returns from Run and carries on as the real program.
package watch

import (
	"fmt"
	"log/slog"

	"github.com/bugsnag/panicwrap"
	"github.com/computerscienceiscool/tracestack/pkg/handler"
	"github.com/computerscienceiscool/tracestack/pkg/hook"
	"github.com/computerscienceiscool/tracestack/pkg/logger"
)

// Child is the status Run reports inside the monitored child
const Child = -1

// Watcher forwards panics of a monitored child to a hook
type Watcher struct {
	hook   hook.Hook
	logger *slog.Logger
	config *panicwrap.WrapConfig
	err    error
}

// New creates a Watcher handing panics to h
func New(h hook.Hook, log *slog.Logger) *Watcher {
	if log == nil {
		log = logger.Discard()
	}
	w := &Watcher{hook: h, logger: log}
	w.config = &panicwrap.WrapConfig{Handler: w.handle}
	return w
}

// Run starts monitoring. In the parent it blocks until the child exits and
// returns the child's exit status together with any hook failure. In the
// child it returns Child immediately; so does a monitor that cannot start,
// together with the reason.
func (w *Watcher) Run() (int, error) {
	status, err := panicwrap.Wrap(w.config)
	if err != nil {
		return Child, fmt.Errorf("failed to start monitor: %w", err)
	}
	if status == Child {
		return Child, nil
	}
	w.logger.Debug("monitored child exited", "status", status)
	return status, w.err
}

// Monitored reports whether the current process is the monitored child
func (w *Watcher) Monitored() bool {
	return panicwrap.Wrapped(w.config)
}

func (w *Watcher) handle(output string) {
	d, err := handler.ParsePanic(output)
	if err != nil {
		w.logger.Warn("unrecognised panic output", "error", err)
		w.err = err
		return
	}
	w.err = w.hook.Handle(d)
}
