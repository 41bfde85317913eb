package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return "coded: " + e.code }

func TestAsType(t *testing.T) {
	base := &codedError{code: "EMAIL_TAKEN"}

	got, ok := AsType[*codedError](Wrap(base, "register"))
	assert.True(t, ok)
	assert.Same(t, base, got)

	got, ok = AsType[*codedError](Join(New("other"), fmt.Errorf("ctx: %w", base)))
	assert.True(t, ok)
	assert.Equal(t, "EMAIL_TAKEN", got.code)

	_, ok = AsType[*codedError](New("plain"))
	assert.False(t, ok)

	_, ok = AsType[*codedError](nil)
	assert.False(t, ok)
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "noop"))
	assert.NoError(t, WithStack(nil))
}
