package codes

import (
	"errors"
	"strconv"

	"nftlend/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

var kinds = map[core.ErrorCode]twirp.ErrorCode{
	core.ErrUnauthorized:           twirp.PermissionDenied,
	core.ErrVersionConflict:        twirp.Aborted,
	core.ErrNotApproved:            twirp.FailedPrecondition,
	core.ErrInvalidAmount:          twirp.InvalidArgument,
	core.ErrInvalidDuration:        twirp.InvalidArgument,
	core.ErrCustodyTransferFailed:  twirp.FailedPrecondition,
	core.ErrInsufficientCollateral: twirp.FailedPrecondition,
	core.ErrInsufficientTreasury:   twirp.ResourceExhausted,
	core.ErrOracleUnavailable:      twirp.Unavailable,
	core.ErrTokenNotDeposited:      twirp.NotFound,
	core.ErrWithdrawNotAllowed:     twirp.FailedPrecondition,
	core.ErrLoanNotFound:           twirp.NotFound,
	core.ErrLoanClosed:             twirp.FailedPrecondition,
	core.ErrOverRepayment:          twirp.InvalidArgument,
	core.ErrNoDebt:                 twirp.NotFound,
	core.ErrDisbursementFailed:     twirp.Unavailable,
}

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From twirp error carrying the engine error code of err
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	kind, ok := kinds[code]
	if !ok {
		kind = twirp.Internal
	}

	return twirp.NewError(kind, err.Error()).WithMeta(CustomCodeKey, strconv.Itoa(code.Code()))
}

// Get get error code
func Get(err twirp.Error) int {
	if v := err.Meta(CustomCodeKey); v != "" {
		if code, e := strconv.Atoi(v); e == nil {
			return code
		}
	}

	switch err.Code() {
	case twirp.InvalidArgument, twirp.Malformed:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(err.Code())
	}
}
