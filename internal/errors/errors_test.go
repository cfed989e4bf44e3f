package errors

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesTarget(t *testing.T) {
	err := Wrap(io.EOF, "read body")

	assert.True(t, Is(err, io.EOF))
	assert.Equal(t, "read body: EOF", err.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestIsAny(t *testing.T) {
	err := Wrapf(os.ErrNotExist, "open %s", "config.yaml")

	assert.True(t, IsAny(err, io.EOF, os.ErrNotExist))
	assert.False(t, IsAny(err, io.EOF, os.ErrPermission))
	assert.False(t, IsAny(err))
}
