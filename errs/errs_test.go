package errs

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySentinels(t *testing.T) {
	for _, test := range []struct {
		err      error
		sentinel error
		category Category
	}{
		{Schema("r", "unknown token %q", "x9"), ErrSchema, CategorySchema},
		{Size("r", "too long"), ErrSize, CategorySize},
		{Bounds("", "past end"), ErrBounds, CategoryBounds},
		{Value("r.0", "not a number"), ErrValue, CategoryValue},
	} {
		assert.ErrorIs(t, test.err, test.sentinel)
		assert.Equal(t, test.category, CategoryOf(test.err))
		for _, other := range []error{ErrSchema, ErrSize, ErrBounds, ErrValue} {
			if other != test.sentinel {
				assert.NotErrorIs(t, test.err, other)
			}
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := Schema("a.b", "unknown token %q", "x9")
	assert.Equal(t, `cstruct: schema error: a.b: unknown token "x9"`, err.Error())

	err = Size("", "buffer size can not be 0")
	assert.Equal(t, "cstruct: size error: buffer size can not be 0", err.Error())
}

func TestWrapValueUnwraps(t *testing.T) {
	cause := stderrors.New("bad json")
	err := WrapValue("doc", cause, "transcode failed")
	assert.ErrorIs(t, err, ErrValue)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "(bad json)")
}

func TestErrorsCarryStack(t *testing.T) {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	_, ok := Bounds("", "past end").(stackTracer)
	require.True(t, ok)
}

func TestWithPath(t *testing.T) {
	err := WithPath(Bounds("", "past end"), "r.1")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "r.1", e.Path())
	assert.ErrorIs(t, err, ErrBounds)

	located := Size("a", "too long")
	assert.Same(t, located, WithPath(located, "b"))

	foreign := fmt.Errorf("plain")
	assert.Same(t, foreign, WithPath(foreign, "b"))
	assert.Equal(t, Category(""), CategoryOf(foreign))
}
