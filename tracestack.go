// Package tracestack searches the web for the panic that just crashed your
// program.
//
// Install a handler and route panics to it from main:
//
//	func main() {
//		defer tracestack.Guard()
//		if err := tracestack.Enable(tracestack.Config{}); err != nil {
//			log.Fatal(err)
//		}
//		...
//	}
//
// When a panic reaches Guard the traceback is printed and, if the user
// answers "s", a browser opens a search for it.
package tracestack

import (
	"fmt"
	"os"

	"github.com/computerscienceiscool/tracestack/pkg/config"
	"github.com/computerscienceiscool/tracestack/pkg/handler"
	"github.com/computerscienceiscool/tracestack/pkg/hook"
	"github.com/computerscienceiscool/tracestack/pkg/render"
	"github.com/computerscienceiscool/tracestack/pkg/watch"
)

// Config selects the search engine and whether to prompt
type Config = handler.Config

// Default is the process-wide hook slot. Its original hook prints the
// traceback; Guard terminates the process after the hook has run.
var Default = hook.NewRegistry(hook.NewPrintHook(os.Stderr))

var exit = os.Exit

// New creates a handler whose zero-argument entry point reads the panic
// being dispatched by Default.
func New(cfg Config, opts ...handler.Option) (*handler.Handler, error) {
	opts = append([]handler.Option{handler.WithCurrent(Default.InFlight)}, opts...)
	return handler.New(cfg, opts...)
}

// Enable installs a new handler in Default, replacing whatever was there
func Enable(cfg Config, opts ...handler.Option) error {
	h, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	Default.Install(h)
	return nil
}

// EnableFromEnv is Enable with the TRACESTACK_* environment variables
func EnableFromEnv(opts ...handler.Option) error {
	cfg, err := config.FromEnviron()
	if err != nil {
		return err
	}
	return Enable(*cfg, opts...)
}

// Disable puts the original hook back in Default. Safe to call when disabled.
func Disable() {
	Default.Uninstall()
}

// Guard hands a panic unwinding through it to the hook installed in Default
// and terminates the process. Use it directly with defer.
func Guard() {
	if v := recover(); v != nil {
		Default.Fail(v)
	}
}

// PostMortem handles a panic once, with a transient handler that is never
// installed. recovered is the value recover() returned in the caller's
// deferred function; when it is nil the panic Default is dispatching is used.
// It returns errors.ErrNoActiveError when there is no panic at all.
func PostMortem(recovered interface{}, cfg Config, opts ...handler.Option) error {
	current := handler.CurrentFunc(Default.InFlight)
	if recovered != nil {
		current = handler.Recovered(recovered)
	}
	opts = append([]handler.Option{handler.WithCurrent(current)}, opts...)

	h, err := handler.New(cfg, opts...)
	if err != nil {
		return err
	}
	return h.HandleCurrent()
}

// Trace returns a function that runs fn with a handler enabled. A panic in
// fn is handed to the handler and keeps propagating; Default is restored
// before the wrapper returns or panics. Guard lets the re-raised panic
// terminate the process without printing it a second time.
func Trace(fn func(), cfg Config, opts ...handler.Option) (func(), error) {
	h, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return Default.Wrap(h, fn), nil
}

// Watch re-executes the program under a monitor that catches panics on every
// goroutine. In the monitored child it returns nil and the program runs
// normally. In the parent it never returns: once the child exits, any panic
// it printed is handled and the process exits with the child's status.
func Watch(cfg Config, opts ...handler.Option) error {
	// the child has already printed its trace
	opts = append([]handler.Option{handler.WithRenderer(render.NewSummary(os.Stderr))}, opts...)
	h, err := handler.New(cfg, opts...)
	if err != nil {
		return err
	}

	status, err := watch.New(h, nil).Run()
	if status == watch.Child {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tracestack: %v\n", err)
	}
	exit(status)
	return nil
}
