package handler

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	errs "github.com/computerscienceiscool/tracestack/pkg/errors"
	"github.com/computerscienceiscool/tracestack/pkg/render"
	goerrors "github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goPanicOutput = `panic: something went wrong

goroutine 1 [running]:
main.explode(...)
	/home/dev/app/main.go:12
main.main()
	/home/dev/app/main.go:8 +0x25
exit status 2
`

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, "panic"},
		{"string", "boom", "panic"},
		{"int", 3, "panic"},
		{"errors.New", errors.New("x"), "errors.errorString"},
		{"path error", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, "fs.PathError"},
		{"go-errors wrap", goerrors.Wrap(errors.New("x"), 0), "errors.errorString"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestCapture(t *testing.T) {
	d := Capture(errors.New("exception message"), 0)

	assert.Equal(t, "errors.errorString", d.Kind)
	assert.Equal(t, "exception message", d.Message())
	assert.Contains(t, string(d.Stack), "descriptor_test.go")
}

func TestCapture_FromRecover(t *testing.T) {
	var d Descriptor
	func() {
		defer func() {
			d = Capture(recover(), 0)
		}()
		panic("boom")
	}()

	assert.Equal(t, "panic", d.Kind)
	assert.Equal(t, "boom", d.Value)
	assert.Equal(t, "boom", d.Message())
	assert.NotEmpty(t, d.Stack)
}

func TestCapture_Nil(t *testing.T) {
	d := Capture(nil, 0)
	assert.Equal(t, "panic", d.Kind)
	assert.Nil(t, d.Stack)
}

func TestParsePanic(t *testing.T) {
	d, err := ParsePanic(goPanicOutput)
	require.NoError(t, err)

	assert.Equal(t, "panic", d.Kind)
	assert.Equal(t, "something went wrong", d.Message())
	assert.True(t, strings.HasPrefix(string(d.Stack), "panic: something went wrong"))
}

func TestParsePanic_LeadingOutput(t *testing.T) {
	d, err := ParsePanic("starting server\nlistening on :8080\n" + goPanicOutput)
	require.NoError(t, err)

	assert.Equal(t, "something went wrong", d.Message())
	assert.True(t, strings.HasPrefix(string(d.Stack), "panic: "))
}

func TestParsePanic_FatalError(t *testing.T) {
	text := "fatal error: all goroutines are asleep - deadlock!\n\ngoroutine 1 [chan receive]:\nmain.main()\n"

	d, err := ParsePanic(text)
	require.NoError(t, err)

	assert.Equal(t, "fatal error", d.Kind)
	assert.Equal(t, "all goroutines are asleep - deadlock!", d.Message())
	assert.Equal(t, text, string(d.Stack))
}

func TestParsePanic_PrinterOutput(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"runtime error", goerrors.Errorf("assignment to entry in nil map")},
		{"path error", &fs.PathError{Op: "open", Path: "/etc/app.yaml", Err: fs.ErrNotExist}},
		{"string", "boom"},
		{"index message", "index out of range [5] with length 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := Capture(tt.value, 0)

			var buf bytes.Buffer
			require.NoError(t, render.New(&buf).Render(want.Kind, want.Value, want.Stack))

			got, err := ParsePanic(buf.String())
			require.NoError(t, err)
			assert.Equal(t, want.Kind, got.Kind)
			assert.Equal(t, want.Message(), got.Message())
		})
	}
}

func TestParsePanic_WrappedChild(t *testing.T) {
	// a handler printed the failure, then the runtime reported the re-panic
	text := `panic: assignment to entry in nil map [runtime.plainError]

goroutine 1 [running]:
main.main()
	/src/main.go:9 +0x2f

panic: assignment to entry in nil map [recovered]
	panic: assignment to entry in nil map

goroutine 1 [running]:
main.main()
	/src/main.go:9 +0x2f
exit status 2
`
	d, err := ParsePanic(text)
	require.NoError(t, err)

	assert.Equal(t, "runtime.plainError", d.Kind)
	assert.Equal(t, "assignment to entry in nil map", d.Message())
}

func TestParsePanic_Repanicked(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"recovered", "panic: boom [recovered]\n\tpanic: boom\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x1d\n"},
		{"repanicked", "panic: boom [recovered, repanicked]\n\ngoroutine 1 [running]:\nmain.main()\n\t/src/main.go:3 +0x1d\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParsePanic(tt.text)
			require.NoError(t, err)
			assert.Equal(t, "panic", d.Kind)
			assert.Equal(t, "boom", d.Message())
		})
	}
}

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		header      string
		wantKind    string
		wantMessage string
	}{
		{"panic: boom", "panic", "boom"},
		{"panic: boom [panic]", "panic", "boom"},
		{"panic: open x: no such file [fs.PathError]", "fs.PathError", "open x: no such file"},
		{"panic: runtime error: index out of range [5]", "panic", "runtime error: index out of range [5]"},
		{"panic: list [a b]", "panic", "list [a b]"},
		{"panic: boom [recovered]", "panic", "boom"},
		{"fatal error: concurrent map writes", "fatal error", "concurrent map writes"},
	}

	for _, tt := range tests {
		kind, message := splitHeader(tt.header)
		assert.Equal(t, tt.wantKind, kind, "header %q", tt.header)
		assert.Equal(t, tt.wantMessage, message, "header %q", tt.header)
	}
}

func TestParsePanic_NotPanic(t *testing.T) {
	for _, text := range []string{"", "exit status 1\n", "error: panic: not at line start\n"} {
		_, err := ParsePanic(text)
		assert.ErrorIs(t, err, errs.ErrNotPanicOutput, "text %q", text)
	}
}

func TestPanicStart(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"panic: x", 0},
		{"fatal error: x", 0},
		{"a\npanic: x", 2},
		{"ab\nfatal error: x\npanic: y", 3},
		{"nothing", -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, panicStart(tt.text), "text %q", tt.text)
	}
}
