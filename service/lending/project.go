package lending

import (
	"context"

	"nftlend/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ApproveProject accept the project as collateral, approving twice is a no-op
func (s *service) ApproveProject(ctx context.Context, caller, address string) (*core.Project, error) {
	caller, address = core.NormalizeAddress(caller), core.NormalizeAddress(address)
	log := logger.FromContext(ctx).WithField("project", address)

	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.projects.Find(ctx, address)
	if err != nil {
		log.WithError(err).Errorln("projects.Find")
		return nil, err
	}

	if project.Approved {
		return project, nil
	}

	project.Approved = true

	if err := s.db.Tx(func(tx *db.DB) error {
		if !project.Exists() {
			project.FloorValue = decimal.Zero
			if err := s.stores.Projects.Create(ctx, tx, project); err != nil {
				return err
			}
		} else if err := s.stores.Projects.Update(ctx, tx, project); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyProject, address)
		return s.record(ctx, tx, "", core.ActionTypeApproveProject, caller, decimal.Zero, extra)
	}); err != nil {
		log.WithError(err).Errorln("approve project")
		return nil, err
	}

	log.Infoln("project approved")
	return project, nil
}

// SetFloorValue replace the floor value of an approved project
func (s *service) SetFloorValue(ctx context.Context, caller, address string, value decimal.Decimal) (*core.Project, error) {
	caller, address = core.NormalizeAddress(caller), core.NormalizeAddress(address)
	log := logger.FromContext(ctx).WithField("project", address)

	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	if value.IsNegative() || !value.Equal(value.Truncate(maxPricision)) {
		return nil, core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.projects.Find(ctx, address)
	if err != nil {
		log.WithError(err).Errorln("projects.Find")
		return nil, err
	}

	if !project.Exists() || !project.Approved {
		return nil, core.ErrNotApproved
	}

	project.FloorValue = value

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.stores.Projects.Update(ctx, tx, project); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyProject, address)
		extra.Put(core.TransactionKeyFloorValue, value)
		return s.record(ctx, tx, "", core.ActionTypeSetFloor, caller, value, extra)
	}); err != nil {
		log.WithError(err).Errorln("set floor value")
		return nil, err
	}

	log.WithField("floor", value).Infoln("new floor")
	return project, nil
}

// DepositFunds add eth to the treasury
func (s *service) DepositFunds(ctx context.Context, caller string, amount decimal.Decimal) (*core.Treasury, error) {
	caller = core.NormalizeAddress(caller)
	log := logger.FromContext(ctx).WithField("caller", caller)

	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	if !validAmount(amount) {
		return nil, core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	treasury, err := s.stores.Treasury.Find(ctx)
	if err != nil {
		log.WithError(err).Errorln("treasury.Find")
		return nil, err
	}

	treasury.TotalEth = treasury.TotalEth.Add(amount)

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.stores.Treasury.Save(ctx, tx, treasury); err != nil {
			return err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyTotalEth, treasury.TotalEth)
		return s.record(ctx, tx, "", core.ActionTypeDepositFunds, caller, amount, extra)
	}); err != nil {
		log.WithError(err).Errorln("deposit funds")
		return nil, err
	}

	log.WithField("total_eth", treasury.TotalEth).Infoln("funds deposited")
	return treasury, nil
}
