package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"nftlend/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	err := From(fmt.Errorf("%w: %w", core.ErrCustodyTransferFailed, errors.New("not token owner")))
	assert.Equal(t, twirp.FailedPrecondition, err.Code())
	assert.Equal(t, "custody transfer failed: not token owner", err.Msg())
	assert.Equal(t, core.ErrCustodyTransferFailed.Code(), Get(err))

	err = From(core.ErrLoanNotFound)
	assert.Equal(t, http.StatusNotFound, twirp.ServerHTTPStatusFromErrorCode(err.Code()))
	assert.Equal(t, 100200, Get(err))

	err = From(errors.New("disk full"))
	assert.Equal(t, twirp.Internal, err.Code())
	assert.Equal(t, http.StatusInternalServerError, Get(err))

	assert.Equal(t, InvalidArguments, Get(twirp.InvalidArgumentError("amount", "required")))
	assert.Equal(t, 42, Get(With(twirp.NotFoundError("x"), 42).(twirp.Error)))
}
