package rest

import (
	"net/http"
	"time"

	"nftlend/core"
	"nftlend/handler/param"
	"nftlend/handler/render"
)

func transactionsHandler(transactionStr core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string    `json:"account"`
			Offset  time.Time `json:"offset"`
			Limit   int       `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 500
		}

		var (
			transactions []*core.Transaction
			err          error
		)

		ctx := r.Context()
		if params.Account != "" {
			transactions, err = transactionStr.ListByAccount(ctx, core.NormalizeAddress(params.Account), params.Offset, params.Limit)
		} else {
			transactions, err = transactionStr.List(ctx, params.Offset, params.Limit)
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
