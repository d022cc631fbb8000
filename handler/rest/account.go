package rest

import (
	"net/http"
	"time"

	"nftlend/core"
	"nftlend/handler/param"
	"nftlend/handler/render"
	"nftlend/handler/views"

	"github.com/go-chi/chi"
)

func accountHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := lending.Account(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AccountView(summary, time.Now()))
	}
}

func candidatesHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidates, err := lending.DepositCandidates(r.Context(), chi.URLParam(r, "address"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, candidates)
	}
}

type tokenParams struct {
	Project string `json:"project" valid:"required"`
	TokenID string `json:"token_id" valid:"required"`
}

func depositTokenHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params tokenParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		token, err := lending.DepositToken(r.Context(), caller(r), params.Project, params.TokenID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, token)
	}
}

func withdrawTokenHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params tokenParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := lending.WithdrawToken(r.Context(), caller(r), params.Project, params.TokenID); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}
