package lending

import (
	"context"
	"fmt"
	"time"

	"nftlend/core"
	"nftlend/internal/risk"
	"nftlend/pkg/id"
	lend "nftlend/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Borrow issue a loan of amount eth to account and pay it out of the treasury
func (s *service) Borrow(ctx context.Context, account string, amount decimal.Decimal, duration time.Duration) (*core.Loan, error) {
	account = core.NormalizeAddress(account)
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"account": account,
		"amount":  amount,
	})

	if !validAmount(amount) {
		return nil, core.ErrInvalidAmount
	}

	if duration < time.Second {
		return nil, core.ErrInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	treasury, err := s.stores.Treasury.Find(ctx)
	if err != nil {
		log.WithError(err).Errorln("treasury.Find")
		return nil, err
	}

	if treasury.TotalEth.LessThan(amount) {
		return nil, core.ErrInsufficientTreasury
	}

	acc, err := s.stores.Accounts.Find(ctx, account)
	if err != nil {
		log.WithError(err).Errorln("accounts.Find")
		return nil, err
	}

	borrowMax, err := s.borrowMax(ctx, s.projects, account)
	if err != nil {
		return nil, err
	}

	values, err := s.usd(ctx, borrowMax, risk.ProjectedDebt(acc.EthBorrowed, amount))
	if err != nil {
		log.WithError(err).Errorln("oracle.Convert")
		return nil, err
	}

	if values[1].GreaterThan(values[0]) {
		return nil, core.ErrInsufficientCollateral
	}

	loan := lend.NewLoan(account, amount, duration, s.now())
	traceID := id.GenTraceID()

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.stores.Loans.Create(ctx, tx, loan); err != nil {
			return err
		}

		acc.EthBorrowed = acc.EthBorrowed.Add(loan.Owed())
		if err := s.stores.Accounts.Save(ctx, tx, acc); err != nil {
			return err
		}

		treasury.TotalEth = treasury.TotalEth.Sub(amount)
		if err := s.stores.Treasury.Save(ctx, tx, treasury); err != nil {
			return err
		}

		transfer := &core.Transfer{
			TraceID:    id.Sub(traceID, "disburse"),
			LoanID:     loan.ID,
			OpponentID: account,
			Amount:     amount,
			Memo:       fmt.Sprintf("loan %d", loan.ID),
		}
		if err := s.stores.Transfers.Create(ctx, tx, transfer); err != nil {
			return err
		}

		extra := core.NewTransactionExtraFrom(loan)
		extra.Put(core.TransactionKeyLoan, loan.ID)
		extra.Put(core.TransactionKeyEthBorrowed, acc.EthBorrowed)
		extra.Put(core.TransactionKeyTotalEth, treasury.TotalEth)
		if err := s.record(ctx, tx, traceID, core.ActionTypeBorrow, account, amount, extra); err != nil {
			return err
		}

		if err := s.wallet.Transfer(ctx, transfer); err != nil {
			return fmt.Errorf("%w: %w", core.ErrDisbursementFailed, err)
		}

		return nil
	}); err != nil {
		log.WithError(err).Errorln("borrow")
		return nil, err
	}

	log.WithField("loan", loan.ID).Infoln("loan issued")
	return loan, nil
}

// Repay pay amount towards the loan, anyone may repay on behalf of the borrower
func (s *service) Repay(ctx context.Context, caller string, loanID uint64, amount decimal.Decimal) (*core.Loan, error) {
	caller = core.NormalizeAddress(caller)
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"caller": caller,
		"loan":   loanID,
		"amount": amount,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	loan, err := s.stores.Loans.Find(ctx, loanID)
	if err != nil {
		log.WithError(err).Errorln("loans.Find")
		return nil, err
	}

	if err := lend.RepayAllowed(loan, amount); err != nil {
		return nil, err
	}

	if !validAmount(amount) {
		return nil, core.ErrInvalidAmount
	}

	acc, err := s.stores.Accounts.Find(ctx, loan.Borrower)
	if err != nil {
		log.WithError(err).Errorln("accounts.Find")
		return nil, err
	}

	treasury, err := s.stores.Treasury.Find(ctx)
	if err != nil {
		log.WithError(err).Errorln("treasury.Find")
		return nil, err
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		lend.ApplyRepayment(loan, amount)
		if err := s.stores.Loans.Update(ctx, tx, loan); err != nil {
			return err
		}

		acc.EthBorrowed = acc.EthBorrowed.Sub(amount)
		if acc.EthBorrowed.IsNegative() {
			return fmt.Errorf("account %s debt below zero", acc.Address)
		}

		if err := s.stores.Accounts.Save(ctx, tx, acc); err != nil {
			return err
		}

		treasury.TotalEth = treasury.TotalEth.Add(amount)
		if err := s.stores.Treasury.Save(ctx, tx, treasury); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyLoan, loan.ID)
		extra.Put(core.TransactionKeyStatus, loan.Status.String())
		extra.Put(core.TransactionKeyEthBorrowed, acc.EthBorrowed)
		return s.record(ctx, tx, "", core.ActionTypeRepay, caller, amount, extra)
	}); err != nil {
		log.WithError(err).Errorln("repay")
		return nil, err
	}

	log.WithField("status", loan.Status).Infoln("loan repaid")
	return loan, nil
}
