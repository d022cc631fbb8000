package auth

import (
	"net/http"
	"strings"

	"nftlend/core"
	"nftlend/handler/render"
	"nftlend/handler/request"

	"github.com/fox-one/pkg/logger"
	"github.com/twitchtv/twirp"
)

// HeaderAccount header carrying the calling account, set by the signing gateway in front of the api
const HeaderAccount = "X-Account"

// HandleAuthentication handle authentication
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			account := core.NormalizeAddress(r.Header.Get(HeaderAccount))
			if account == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(ctx).WithField("account", account)
			ctx = logger.WithContext(ctx, log)
			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithAccount(account)))
		}

		return http.HandlerFunc(fn)
	}
}

// LoginRequired reject requests without a calling account
func LoginRequired(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := request.NewContext(r.Context()).GetAccount(); !ok {
			render.Error(w, twirp.NewError(twirp.Unauthenticated, "missing "+strings.ToLower(HeaderAccount)))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
