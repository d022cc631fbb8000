package rest

import (
	"net/http"

	"nftlend/core"
	"nftlend/handler/param"
	"nftlend/handler/render"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func projectsHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := lending.Projects(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, projects)
	}
}

func floorHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		address := chi.URLParam(r, "address")

		floor, err := lending.FloorValue(ctx, address)
		if err != nil {
			render.Error(w, err)
			return
		}

		usd, err := lending.FloorUSDValue(ctx, address)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"project":         core.NormalizeAddress(address),
			"floor_value":     floor,
			"floor_usd_value": usd,
		})
	}
}

func approveProjectHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := lending.ApproveProject(r.Context(), caller(r), chi.URLParam(r, "address"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, project)
	}
}

func setFloorHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			FloorValue decimal.Decimal `json:"floor_value"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		project, err := lending.SetFloorValue(r.Context(), caller(r), chi.URLParam(r, "address"), params.FloorValue)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, project)
	}
}

func treasuryHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		treasury, err := lending.Treasury(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, treasury)
	}
}

func depositFundsHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		treasury, err := lending.DepositFunds(r.Context(), caller(r), params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, treasury)
	}
}

func ethToUSDHandler(lending core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		usd, err := lending.EthToUSD(r.Context(), params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"amount": params.Amount,
			"usd":    usd,
		})
	}
}
