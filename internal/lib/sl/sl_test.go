package sl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	err := errors.New("something went wrong")

	attr := Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "something went wrong", attr.Value.String())
}
