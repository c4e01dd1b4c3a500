// Package hook holds the handler that uncaught panics are handed to.
//
// Go has no runtime-wide hook for uncaught panics, so the slot is an explicit
// Registry. A program routes panics into it by deferring a call that
// recovers and hands the value to Registry.Fail, at the top of main or of a
// goroutine.
package hook

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/computerscienceiscool/tracestack/pkg/handler"
	"github.com/computerscienceiscool/tracestack/pkg/logger"
	"github.com/computerscienceiscool/tracestack/pkg/render"
)

// ExitCode is the status used after an uncaught panic, as the Go runtime does
const ExitCode = 2

// Hook handles one uncaught failure
type Hook interface {
	Handle(d handler.Descriptor) error
}

// PrintHook prints the traceback and nothing else.
// It is the registry's original hook: print, then terminate.
type PrintHook struct {
	r handler.Renderer
}

// NewPrintHook creates a PrintHook that renders to w
func NewPrintHook(w io.Writer) *PrintHook {
	return &PrintHook{r: render.New(w)}
}

// Handle prints the traceback of d
func (p *PrintHook) Handle(d handler.Descriptor) error {
	return p.r.Render(d.Kind, d.Value, d.Stack)
}

// Snapshot is the registry content at one point in time
type Snapshot struct {
	hook Hook
}

// Registry owns the hook slot.
// Installing replaces the previous hook; hooks never chain.
// A Registry is not safe for concurrent use.
type Registry struct {
	original Hook
	current  Hook
	inflight *handler.Descriptor
	// value the last Wrap handed to its hook and then re-raised
	handled interface{}
	exit    func(code int)
	logger  *slog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithExit replaces os.Exit, used after a panic has been handled.
func WithExit(exit func(code int)) Option {
	return func(r *Registry) { r.exit = exit }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a registry whose slot holds original.
// A nil original prints tracebacks to stderr.
func NewRegistry(original Hook, opts ...Option) *Registry {
	if original == nil {
		original = NewPrintHook(os.Stderr)
	}
	r := &Registry{
		original: original,
		current:  original,
		exit:     os.Exit,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the installed hook
func (r *Registry) Current() Hook {
	return r.current
}

// Original returns the hook the registry was created with
func (r *Registry) Original() Hook {
	return r.original
}

// Installed reports whether the slot holds something other than the original
func (r *Registry) Installed() bool {
	return r.current != r.original
}

// Install puts h in the slot and returns what was there before
func (r *Registry) Install(h Hook) Snapshot {
	prev := Snapshot{hook: r.current}
	r.current = h
	r.logger.Debug("hook installed", "hook", fmt.Sprintf("%T", h))
	return prev
}

// Restore puts a snapshot back in the slot
func (r *Registry) Restore(s Snapshot) {
	r.current = s.hook
	r.logger.Debug("hook restored", "hook", fmt.Sprintf("%T", s.hook))
}

// Uninstall puts the original hook back. It is a no-op when nothing is installed.
func (r *Registry) Uninstall() {
	if !r.Installed() {
		return
	}
	r.Restore(Snapshot{hook: r.original})
}

// InFlight reports the failure being dispatched, if any
func (r *Registry) InFlight() (handler.Descriptor, bool) {
	if r.inflight == nil {
		return handler.Descriptor{}, false
	}
	return *r.inflight, true
}

// Dispatch captures v and hands it to the current hook.
// While the hook runs, InFlight reports the captured failure.
func (r *Registry) Dispatch(v interface{}) error {
	d := handler.Capture(v, 1)

	prev := r.inflight
	r.inflight = &d
	defer func() { r.inflight = prev }()

	return r.current.Handle(d)
}

// Fail dispatches v and terminates the process with ExitCode.
// A hook failure is reported on stderr before exiting. A value re-raised by
// Wrap was already handled there and only terminates the process.
func (r *Registry) Fail(v interface{}) {
	if r.alreadyHandled(v) {
		r.handled = nil
		r.logger.Debug("panic already handled", "value", fmt.Sprintf("%v", v))
	} else {
		r.report(r.Dispatch(v))
	}
	r.exit(ExitCode)
}

func (r *Registry) report(err error) {
	if err == nil {
		return
	}
	r.logger.Error("hook failed", "error", err)
	fmt.Fprintf(os.Stderr, "tracestack: %v\n", err)
}

// alreadyHandled reports whether v is the value Wrap last re-raised.
// Values that cannot be compared are never matched.
func (r *Registry) alreadyHandled(v interface{}) bool {
	if r.handled == nil || v == nil {
		return false
	}
	a, b := reflect.ValueOf(v), reflect.ValueOf(r.handled)
	if a.Type() != b.Type() || !a.Comparable() || !b.Comparable() {
		return false
	}
	return v == r.handled
}

// Wrap returns a function that runs fn with h installed.
// A panic in fn is handed to h and keeps propagating afterwards. An enclosing
// Wrap or Fail does not hand the same value to a hook again. The slot is
// restored to its pre-call content on every exit path.
func (r *Registry) Wrap(h Hook, fn func()) func() {
	return func() {
		r.handled = nil
		snap := r.Install(h)
		defer r.Restore(snap)
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if !r.alreadyHandled(v) {
				r.report(r.Dispatch(v))
				r.handled = v
			}
			panic(v)
		}()
		fn()
	}
}
