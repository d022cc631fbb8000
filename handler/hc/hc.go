package hc

import (
	"net/http"
	"time"

	"nftlend/core"
	"nftlend/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/shopspring/decimal"
)

// Handle health check with the oracle state
func Handle(ver string, lending core.ILendingService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, lending))
	return r
}

func handle(version string, lending core.ILendingService) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		oracle := "ok"
		if _, err := lending.EthToUSD(r.Context(), decimal.New(1, 0)); err != nil {
			oracle = "unavailable"
		}

		render.JSON(w, render.H{
			"uptime":  time.Since(b).Truncate(time.Millisecond).String(),
			"version": version,
			"oracle":  oracle,
		})
	}
}
