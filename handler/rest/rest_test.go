package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"nftlend/core"
	"nftlend/handler/auth"
	"nftlend/service/custodian"
	"nftlend/service/lending"
	"nftlend/service/oracle"
	"nftlend/service/wallet"
	"nftlend/store/account"
	"nftlend/store/loan"
	"nftlend/store/project"
	"nftlend/store/token"
	"nftlend/store/transaction"
	"nftlend/store/transfer"
	"nftlend/store/treasury"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c *client) do(method, path, account, body string) (int, response) {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}

	if account != "" {
		r.Header.Set(auth.HeaderAccount, account)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)

	var resp response
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func newClient(t *testing.T) (*client, *custodian.Registry) {
	database := db.MustOpen(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "nftlend.db"),
	})
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	transactions := transaction.New(database)
	registry := custodian.NewRegistry("0xvault")
	svc := lending.New(database, &core.Config{Admins: []string{"0xadmin"}}, lending.Stores{
		Projects:     project.New(database),
		Tokens:       token.New(database),
		Accounts:     account.New(database),
		Loans:        loan.New(database),
		Treasury:     treasury.New(database),
		Transactions: transactions,
		Transfers:    transfer.New(database),
	}, oracle.New(oracle.Fixed(decimal.NewFromInt(100000000000), 8), 0), registry, wallet.NewLedger())

	return &client{t: t, handler: Handle(svc, transactions)}, registry
}

func TestRestAPI(t *testing.T) {
	c, registry := newClient(t)
	registry.Mint("0xkvn", "0", "0xalice")
	registry.Mint("0xkvn", "1", "0xalice")

	status, resp := c.do("POST", "/projects/0xkvn/approve", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, resp = c.do("POST", "/projects/0xkvn/approve", "0xalice", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, core.ErrUnauthorized.Code(), resp.Code)

	status, _ = c.do("POST", "/projects/0xKVN/approve", "0xadmin", "")
	require.Equal(t, http.StatusOK, status)
	status, _ = c.do("PUT", "/projects/0xkvn/floor", "0xadmin", `{"floor_value":"0.45"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = c.do("POST", "/treasury/deposits", "0xadmin", `{"amount":"10"}`)
	require.Equal(t, http.StatusOK, status)

	status, resp = c.do("GET", "/projects/0xkvn/floor", "", "")
	require.Equal(t, http.StatusOK, status)
	var floor struct {
		FloorValue    decimal.Decimal `json:"floor_value"`
		FloorUSDValue decimal.Decimal `json:"floor_usd_value"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &floor))
	assert.Equal(t, "0.45", floor.FloorValue.String())
	assert.Equal(t, "450", floor.FloorUSDValue.String())

	status, resp = c.do("GET", "/accounts/0xalice/candidates", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"0xkvn":["0","1"]}`, string(resp.Data))

	for _, id := range []string{"0", "1"} {
		status, _ = c.do("POST", "/tokens/deposit", "0xalice", `{"project":"0xkvn","token_id":"`+id+`"}`)
		require.Equal(t, http.StatusOK, status)
	}

	status, resp = c.do("POST", "/tokens/deposit", "0xalice", `{"project":"0xkvn"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = c.do("POST", "/loans", "0xalice", `{"amount":"0.21","duration":3600}`)
	assert.Equal(t, http.StatusPreconditionFailed, status)
	assert.Equal(t, core.ErrInsufficientCollateral.Code(), resp.Code)

	// 2e10 seconds overflows time.Duration
	status, resp = c.do("POST", "/loans", "0xalice", `{"amount":"0.15","duration":20000000000}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, core.ErrInvalidDuration.Code(), resp.Code)

	status, resp = c.do("POST", "/loans", "0xalice", `{"amount":"0.15","duration":3600}`)
	require.Equal(t, http.StatusOK, status)
	var l struct {
		ID          uint64          `json:"id"`
		Interest    decimal.Decimal `json:"interest"`
		Outstanding decimal.Decimal `json:"outstanding"`
		Status      string          `json:"status"`
		DueTime     time.Time       `json:"due_time"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &l))
	assert.Equal(t, "0.015", l.Interest.String())
	assert.Equal(t, "0.165", l.Outstanding.String())
	assert.Equal(t, "Open", l.Status)

	status, resp = c.do("GET", "/accounts/0xalice", "", "")
	require.Equal(t, http.StatusOK, status)
	var summary struct {
		HealthScore *int64 `json:"health_score"`
		Loans       []struct {
			ID uint64 `json:"id"`
		} `json:"loans"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	require.NotNil(t, summary.HealthScore)
	assert.EqualValues(t, 163, *summary.HealthScore)
	assert.Len(t, summary.Loans, 1)

	status, resp = c.do("POST", "/loans/"+strconv.FormatUint(l.ID, 10)+"/repay", "0xalice", `{"amount":"0.165"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &l))
	assert.Equal(t, "Repaid", l.Status)

	status, resp = c.do("GET", "/loans/999", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, core.ErrLoanNotFound.Code(), resp.Code)

	status, resp = c.do("GET", "/transactions?account=0xALICE", "", "")
	require.Equal(t, http.StatusOK, status)
	var transactions []*core.Transaction
	require.NoError(t, json.Unmarshal(resp.Data, &transactions))
	assert.Len(t, transactions, 4)

	status, resp = c.do("GET", "/eth-to-usd?amount=0.5", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"amount":"0.5","usd":"500"}`, string(resp.Data))
}
