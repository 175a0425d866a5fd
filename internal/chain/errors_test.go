package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutNetErr struct{}

func (timeoutNetErr) Error() string   { return "i/o timeout" }
func (timeoutNetErr) Timeout() bool   { return true }
func (timeoutNetErr) Temporary() bool { return true }

func TestClassifyRpcError(t *testing.T) {
	assert.Nil(t, classifyRpcError(nil))

	err := classifyRpcError(fmt.Errorf("post: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = classifyRpcError(timeoutNetErr{})
	assert.ErrorIs(t, err, ErrTimeout)

	err = classifyRpcError(fmt.Errorf("post: %w", context.Canceled))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrNetwork)
	assert.False(t, IsFetchError(err))

	err = classifyRpcError(errors.New("connection refused"))
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrTimeout)
}
