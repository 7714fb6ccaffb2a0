// FILE: ssetail/src/internal/client/errors_test.go
package client

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReadError(t *testing.T) {
	assert.Equal(t, ErrClosed, classifyReadError(io.EOF))
	assert.Equal(t, ErrClosed, classifyReadError(fmt.Errorf("read: %w", io.EOF)))
	assert.Equal(t, ErrIdleTimeout, classifyReadError(os.ErrDeadlineExceeded))
	assert.Equal(t, ErrRead, classifyReadError(errors.New("connection reset by peer")))
}

func TestIsConnectionError(t *testing.T) {
	for _, sentinel := range []error{ErrConnect, ErrWrite, ErrRead, ErrIdleTimeout, ErrClosed} {
		assert.True(t, isConnectionError(fmt.Errorf("%w: dial tcp: refused", sentinel)))
	}
	assert.False(t, isConnectionError(fmt.Errorf("%w: boom", ErrUnexpected)))
	assert.False(t, isConnectionError(errors.New("stream is not valid utf-8")))
}
