package core

// ActionType engine operation recorded in the audit log
type ActionType int

const (
	// ActionTypeDefault default
	ActionTypeDefault ActionType = iota
	// ActionTypeApproveProject project approved, event ProjectApproved
	ActionTypeApproveProject
	// ActionTypeSetFloor floor value replaced, event NewFloor
	ActionTypeSetFloor
	// ActionTypeDepositToken nft deposited, event Deposit
	ActionTypeDepositToken
	// ActionTypeWithdrawToken nft withdrawn, event Withdraw
	ActionTypeWithdrawToken
	// ActionTypeDepositFunds eth added to the treasury
	ActionTypeDepositFunds
	// ActionTypeBorrow loan issued, event BorrowEth
	ActionTypeBorrow
	// ActionTypeRepay loan repayment
	ActionTypeRepay
)

var actionNames = map[ActionType]string{
	ActionTypeDefault:        "Default",
	ActionTypeApproveProject: "ProjectApproved",
	ActionTypeSetFloor:       "NewFloor",
	ActionTypeDepositToken:   "Deposit",
	ActionTypeWithdrawToken:  "Withdraw",
	ActionTypeDepositFunds:   "DepositFunds",
	ActionTypeBorrow:         "BorrowEth",
	ActionTypeRepay:          "Repay",
}

// String event name
func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "Unknown"
}
