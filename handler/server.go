package handler

import (
	"net/http"

	"nftlend/core"
	"nftlend/handler/rest"
)

// Server server
type Server struct {
	lending          core.ILendingService
	transactionStore core.TransactionStore
}

// New new server function
func New(
	lending core.ILendingService,
	transactionStore core.TransactionStore,
) Server {
	return Server{
		lending:          lending,
		transactionStore: transactionStore,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.lending, s.transactionStore)
}
