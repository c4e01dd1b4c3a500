package engine

import (
	"errors"
	"testing"

	errs "github.com/computerscienceiscool/tracestack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const query = "Exception exception message"

func TestSearch_URLs(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Default, "http://www.google.com/search?q=Exception+exception+message+python+site%3Astackoverflow.com+inurl%3Aquestions"},
		{Google, "http://www.google.com/search?q=Exception+exception+message+python"},
		{StackOverflow, "http://www.stackoverflow.com/search?q=Exception+exception+message+%5Bpython%5D"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e, err := New(tt.kind, Options{Language: "python"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Search(query))
		})
	}
}

func TestSearch_DefaultLanguage(t *testing.T) {
	e, err := New(StackOverflow, Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://www.stackoverflow.com/search?q=boom+%5Bgo%5D", e.Search("boom"))

	e, err = New(Google, Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://www.google.com/search?q=boom+go", e.Search("boom"))
}

func TestSearch_EscapesQuery(t *testing.T) {
	e, err := New(Google, Options{Language: "go"})
	require.NoError(t, err)

	got := e.Search("*fs.PathError open /tmp/x&y: no such file")
	assert.Equal(t,
		"http://www.google.com/search?q=%2Afs.PathError+open+%2Ftmp%2Fx%26y%3A+no+such+file+go",
		got)
}

func TestName(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Default, "Stack Overflow (using Google)"},
		{Google, "the web (using Google)"},
		{StackOverflow, "Stack Overflow"},
	}

	for _, tt := range tests {
		e, err := New(tt.kind, Options{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, e.Name(), "kind %s", tt.kind)
	}
}

func TestParseKind(t *testing.T) {
	for i, name := range Names() {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, Kind(i), k)
		assert.Equal(t, name, k.String())
	}
}

func TestParseKind_Invalid(t *testing.T) {
	for _, name := range []string{"", "bing", "Google", " default"} {
		_, err := ParseKind(name)
		require.Error(t, err, "name %q", name)

		var cfgErr *errs.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, name, cfgErr.Value)
		assert.Equal(t, []string{"default", "google", "stackoverflow"}, cfgErr.Choices)
		assert.ErrorIs(t, err, errs.ErrInvalidEngine)
	}
}

func TestNew_OutOfRange(t *testing.T) {
	_, err := New(Kind(7), Options{})
	assert.ErrorIs(t, err, errs.ErrInvalidEngine)
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestNames_ReturnsCopy(t *testing.T) {
	names := Names()
	names[0] = "changed"
	assert.Equal(t, "default", Names()[0])
}
