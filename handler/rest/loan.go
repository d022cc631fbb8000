package rest

import (
	"math"
	"net/http"
	"time"

	"nftlend/core"
	"nftlend/handler/param"
	"nftlend/handler/render"
	"nftlend/handler/views"
	"nftlend/pkg/id"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

func loansHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loans, err := lending.Loans(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LoanViews(loans, time.Now()))
	}
}

func loanHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loan, err := lending.Loan(r.Context(), id.Str2Num(chi.URLParam(r, "id")))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LoanView(loan, time.Now()))
	}
}

func borrowHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount decimal.Decimal `json:"amount"`
			// seconds
			Duration int64 `json:"duration"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		// seconds beyond the range of time.Duration
		if params.Duration > maxDurationSeconds {
			render.Error(w, core.ErrInvalidDuration)
			return
		}

		loan, err := lending.Borrow(r.Context(), caller(r), params.Amount, time.Duration(params.Duration)*time.Second)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LoanView(loan, time.Now()))
	}
}

func repayHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		loan, err := lending.Repay(r.Context(), caller(r), id.Str2Num(chi.URLParam(r, "id")), params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LoanView(loan, time.Now()))
	}
}
