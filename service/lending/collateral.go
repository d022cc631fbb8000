package lending

import (
	"context"
	"fmt"
	"strings"

	"nftlend/core"
	lend "nftlend/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DepositToken move the token into custody as collateral of account
func (s *service) DepositToken(ctx context.Context, account, address, tokenID string) (*core.DepositedToken, error) {
	account, address, tokenID = core.NormalizeAddress(account), core.NormalizeAddress(address), strings.TrimSpace(tokenID)
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"account":  account,
		"project":  address,
		"token_id": tokenID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.projects.Find(ctx, address)
	if err != nil {
		log.WithError(err).Errorln("projects.Find")
		return nil, err
	}

	if !project.Approved {
		return nil, core.ErrNotApproved
	}

	exist, err := s.stores.Tokens.Find(ctx, address, tokenID)
	if err != nil {
		log.WithError(err).Errorln("tokens.Find")
		return nil, err
	}

	if exist.Exists() {
		return nil, fmt.Errorf("%w: token already in custody", core.ErrCustodyTransferFailed)
	}

	token := &core.DepositedToken{
		Project: address,
		TokenID: tokenID,
		Owner:   account,
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.stores.Tokens.Create(ctx, tx, token); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyProject, address)
		extra.Put(core.TransactionKeyTokenID, tokenID)
		if err := s.record(ctx, tx, "", core.ActionTypeDepositToken, account, decimal.Zero, extra); err != nil {
			return err
		}

		if err := s.custodian.TransferIn(ctx, address, tokenID, account); err != nil {
			return fmt.Errorf("%w: %w", core.ErrCustodyTransferFailed, err)
		}

		return nil
	}); err != nil {
		log.WithError(err).Errorln("deposit token")
		return nil, err
	}

	log.Infoln("token deposited")
	return token, nil
}

// WithdrawToken return the token to account, the remaining collateral must keep covering the debt
func (s *service) WithdrawToken(ctx context.Context, account, address, tokenID string) error {
	account, address, tokenID = core.NormalizeAddress(account), core.NormalizeAddress(address), strings.TrimSpace(tokenID)
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"account":  account,
		"project":  address,
		"token_id": tokenID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.stores.Tokens.Find(ctx, address, tokenID)
	if err != nil {
		log.WithError(err).Errorln("tokens.Find")
		return err
	}

	if !token.Exists() || token.Owner != account {
		return core.ErrTokenNotDeposited
	}

	if err := s.withdrawAllowed(ctx, account, token); err != nil {
		return err
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.stores.Tokens.Delete(ctx, tx, token); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyProject, address)
		extra.Put(core.TransactionKeyTokenID, tokenID)
		if err := s.record(ctx, tx, "", core.ActionTypeWithdrawToken, account, decimal.Zero, extra); err != nil {
			return err
		}

		if err := s.custodian.TransferOut(ctx, address, tokenID, account); err != nil {
			return fmt.Errorf("%w: %w", core.ErrCustodyTransferFailed, err)
		}

		return nil
	}); err != nil {
		log.WithError(err).Errorln("withdraw token")
		return err
	}

	log.Infoln("token withdrawn")
	return nil
}

// withdrawAllowed borrow max without the token, in usd, must stay >= debt in usd
func (s *service) withdrawAllowed(ctx context.Context, account string, token *core.DepositedToken) error {
	acc, err := s.stores.Accounts.Find(ctx, account)
	if err != nil {
		return err
	}

	if !acc.HasDebt() {
		return nil
	}

	projects, err := s.projects.AllAsMap(ctx)
	if err != nil {
		return err
	}

	// tokens adding no collateral value leave borrow max unchanged
	if p, ok := projects[token.Project]; !ok || p.CollateralValue().IsZero() {
		return nil
	}

	tokens, err := s.stores.Tokens.FindByOwner(ctx, account)
	if err != nil {
		return err
	}

	borrowMax := lend.BorrowMax(lend.Without(tokens, token.Project, token.TokenID), projects)
	values, err := s.usd(ctx, borrowMax, acc.EthBorrowed)
	if err != nil {
		return err
	}

	if values[0].LessThan(values[1]) {
		return core.ErrWithdrawNotAllowed
	}

	return nil
}
