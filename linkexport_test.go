package linkexport_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/linkexport"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := linkexport.Errorf(linkexport.ENOPAGE, "no active tab %q", "x")

	assert.Equal(t, linkexport.ENOPAGE, linkexport.ErrorCode(err))
	assert.Equal(t, "no active tab \"x\"", linkexport.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("collect: %w", linkexport.Errorf(linkexport.ENORESULT, "no payload"))

	assert.Equal(t, linkexport.ENORESULT, linkexport.ErrorCode(err))
	assert.Equal(t, "no payload", linkexport.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, linkexport.EINTERNAL, linkexport.ErrorCode(err))
	assert.Equal(t, "Internal error", linkexport.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, linkexport.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, linkexport.ErrorMessage(nil))
}
