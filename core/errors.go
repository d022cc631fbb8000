package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized admin only operation called by others
	ErrUnauthorized ErrorCode = 100001
	// ErrVersionConflict row changed by a concurrent writer
	ErrVersionConflict ErrorCode = 100002

	// ErrNotApproved project unknown or unapproved
	ErrNotApproved ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInvalidDuration invalid loan duration
	ErrInvalidDuration ErrorCode = 100102
	// ErrCustodyTransferFailed custodian rejected the transfer
	ErrCustodyTransferFailed ErrorCode = 100103
	// ErrInsufficientCollateral borrow exceeds borrowing power
	ErrInsufficientCollateral ErrorCode = 100104
	// ErrInsufficientTreasury treasury lacks funds
	ErrInsufficientTreasury ErrorCode = 100105
	// ErrOracleUnavailable price conversion failed
	ErrOracleUnavailable ErrorCode = 100106
	// ErrTokenNotDeposited token not deposited by the account
	ErrTokenNotDeposited ErrorCode = 100107
	// ErrWithdrawNotAllowed withdrawal would leave the debt undercollateralized
	ErrWithdrawNotAllowed ErrorCode = 100108

	// ErrLoanNotFound no loan
	ErrLoanNotFound ErrorCode = 100200
	// ErrLoanClosed loan already repaid
	ErrLoanClosed ErrorCode = 100201
	// ErrOverRepayment repayment exceeds the outstanding amount
	ErrOverRepayment ErrorCode = 100202
	// ErrNoDebt health score of an account without debt
	ErrNoDebt ErrorCode = 100203
	// ErrDisbursementFailed wallet rejected the loan disbursement
	ErrDisbursementFailed ErrorCode = 100204
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                "unknown",
	ErrUnauthorized:           "unauthorized",
	ErrVersionConflict:        "version conflict",
	ErrNotApproved:            "project not approved",
	ErrInvalidAmount:          "invalid amount",
	ErrInvalidDuration:        "invalid duration",
	ErrCustodyTransferFailed:  "custody transfer failed",
	ErrInsufficientCollateral: "insufficient collateral",
	ErrInsufficientTreasury:   "insufficient treasury",
	ErrOracleUnavailable:      "oracle unavailable",
	ErrTokenNotDeposited:      "token not deposited",
	ErrWithdrawNotAllowed:     "withdraw not allowed",
	ErrLoanNotFound:           "loan not found",
	ErrLoanClosed:             "loan closed",
	ErrOverRepayment:          "over repayment",
	ErrNoDebt:                 "no debt",
	ErrDisbursementFailed:     "disbursement failed",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

// Code numeric code of the error kind
func (e ErrorCode) Code() int {
	return int(e)
}
