package handler

import (
	"reflect"
	"regexp"
	"strings"

	errs "github.com/computerscienceiscool/tracestack/pkg/errors"
	"github.com/computerscienceiscool/tracestack/pkg/render"
	goerrors "github.com/go-errors/errors"
)

// panicKind is the kind reported for values that are not errors
const panicKind = "panic"

// repanicMarkers are appended by the runtime to a panic that was recovered
// and raised again. Longest first.
var repanicMarkers = []string{" [recovered, repanicked]", " [recovered]"}

// kindPattern matches the "[kind]" suffix render.Printer adds to its header
var kindPattern = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)

// Descriptor is one captured failure: its kind, the recovered value and the
// goroutine trace at the point of failure. Stack is passed to the renderer
// without being inspected.
type Descriptor struct {
	Kind  string
	Value interface{}
	Stack []byte
}

// Message returns the failure text used in the search query
func (d Descriptor) Message() string {
	return render.Message(d.Value)
}

// Capture builds a Descriptor from a recovered panic value or an error.
// skip is the number of stack frames above the caller to leave out.
func Capture(v interface{}, skip int) Descriptor {
	d := Descriptor{Kind: KindOf(v), Value: v}
	if v == nil {
		return d
	}
	if wrapped := goerrors.Wrap(v, skip+1); wrapped != nil {
		d.Stack = wrapped.Stack()
	}
	return d
}

// KindOf names the category of a panic value: the dynamic type of an error
// without its pointer marker, or "panic" for any other value.
func KindOf(v interface{}) string {
	switch e := v.(type) {
	case *goerrors.Error:
		return strings.TrimPrefix(e.TypeName(), "*")
	case error:
		return strings.TrimPrefix(reflect.TypeOf(e).String(), "*")
	}
	return panicKind
}

// ParsePanic builds a Descriptor from the output of a Go program that
// panicked. Text before the first "panic: " or "fatal error: " line is
// ignored; the trace from that line on becomes the Stack. Headers written by
// render.Printer give back their kind, and the runtime's re-panic markers
// are dropped from the message.
func ParsePanic(text string) (Descriptor, error) {
	start := panicStart(text)
	if start < 0 {
		return Descriptor{}, errs.ErrNotPanicOutput
	}
	text = text[start:]

	header, rest, _ := strings.Cut(text, "\n")
	kind, message := splitHeader(strings.TrimRight(header, "\r"))
	d := Descriptor{Kind: kind, Value: message, Stack: []byte(text)}
	if kind != panicKind {
		return d, nil
	}

	// runtime panics keep their parsed frames
	if parsed, err := goerrors.ParsePanic("panic: " + message + "\n" + rest); err == nil {
		d.Value = parsed
	}
	return d, nil
}

// splitHeader returns the kind and message of a "panic: " or "fatal error: "
// header line.
func splitHeader(header string) (string, string) {
	kind, message, _ := strings.Cut(header, ": ")
	for _, marker := range repanicMarkers {
		if strings.HasSuffix(message, marker) {
			message = strings.TrimSuffix(message, marker)
			break
		}
	}
	if kind != panicKind {
		return kind, message
	}

	i := strings.LastIndex(message, " [")
	if i < 0 || !strings.HasSuffix(message, "]") {
		return kind, message
	}
	if printed := message[i+2 : len(message)-1]; kindPattern.MatchString(printed) {
		return printed, message[:i]
	}
	return kind, message
}

func panicStart(text string) int {
	for _, prefix := range []string{"panic: ", "fatal error: "} {
		if strings.HasPrefix(text, prefix) {
			return 0
		}
	}
	best := -1
	for _, marker := range []string{"\npanic: ", "\nfatal error: "} {
		if i := strings.Index(text, marker); i >= 0 && (best < 0 || i+1 < best) {
			best = i + 1
		}
	}
	return best
}
