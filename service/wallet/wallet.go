package wallet

import (
	"context"
	"errors"
	"net/http"

	"nftlend/core"
	"nftlend/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type transferRequest struct {
	TraceID    string          `json:"trace_id"`
	Sender     string          `json:"sender,omitempty"`
	OpponentID string          `json:"opponent_id"`
	Amount     decimal.Decimal `json:"amount"`
	Memo       string          `json:"memo,omitempty"`
}

// New new wallet service paying through the transfer api at cfg.EndPoint
func New(cfg core.Wallet) core.IWalletService {
	return &walletService{
		endpoint: cfg.EndPoint,
		sender:   cfg.Sender,
	}
}

type walletService struct {
	endpoint string
	sender   string
}

func (s *walletService) Transfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	input := &transferRequest{
		TraceID:    transfer.TraceID,
		Sender:     s.sender,
		OpponentID: transfer.OpponentID,
		Amount:     transfer.Amount,
		Memo:       transfer.Memo,
	}

	_, err := resthttp.Execute(resthttp.WithRequestID(ctx, transfer.TraceID), "POST", s.endpoint+"/api/transfers", input, nil)
	if err != nil {
		// already paid
		var e *resthttp.Error
		if errors.As(err, &e) && e.Status == http.StatusConflict {
			log.Infoln("transfer exists")
			return nil
		}

		log.WithError(err).Errorln("transfer failed")
		return err
	}

	return nil
}
