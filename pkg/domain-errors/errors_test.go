package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapAndCodes(t *testing.T) {
	t.Run("wrap keeps the cause reachable", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(cause, CodeInternal, "load failed")

		assert.True(t, Is(err, cause))
		assert.True(t, HasCode(err, CodeInternal))
		assert.Equal(t, "load failed: boom", err.Error())
		assert.Equal(t, "load failed", MessageOf(err))
	})

	t.Run("wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})

	t.Run("uncoded errors report internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	})

	t.Run("outermost code wins", func(t *testing.T) {
		inner := New(CodeNotFound, "missing")
		outer := Wrap(inner, CodeBadRequest, "unknown system")
		assert.True(t, HasCode(outer, CodeBadRequest))
		assert.False(t, HasCode(outer, CodeNotFound))
	})
}
