package rest

import (
	"errors"
	"net/http"

	"nftlend/core"
	"nftlend/handler/auth"
	"nftlend/handler/render"
	"nftlend/handler/request"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(lending core.ILendingService, transactionStore core.TransactionStore) http.Handler {
	router := chi.NewRouter()
	router.Use(auth.HandleAuthentication())

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/projects", projectsHandler(lending))
	router.Get("/projects/{address}/floor", floorHandler(lending))
	router.Get("/treasury", treasuryHandler(lending))
	router.Get("/eth-to-usd", ethToUSDHandler(lending))
	router.Get("/accounts/{address}", accountHandler(lending))
	router.Get("/accounts/{address}/candidates", candidatesHandler(lending))
	router.Get("/accounts/{address}/loans", loansHandler(lending))
	router.Get("/loans/{id}", loanHandler(lending))
	router.Get("/transactions", transactionsHandler(transactionStore))

	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired)

		// admin
		r.Post("/projects/{address}/approve", approveProjectHandler(lending))
		r.Put("/projects/{address}/floor", setFloorHandler(lending))
		r.Post("/treasury/deposits", depositFundsHandler(lending))

		r.Post("/tokens/deposit", depositTokenHandler(lending))
		r.Post("/tokens/withdraw", withdrawTokenHandler(lending))
		r.Post("/loans", borrowHandler(lending))
		r.Post("/loans/{id}/repay", repayHandler(lending))
	})

	return router
}

func caller(r *http.Request) string {
	account, _ := request.NewContext(r.Context()).GetAccount()
	return account
}
