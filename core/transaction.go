package core

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
	"github.com/yiplee/structs"
)

const (
	// TransactionKeyProject project key :string
	TransactionKeyProject = "project"
	// TransactionKeyTokenID token id :string
	TransactionKeyTokenID = "token_id"
	// TransactionKeyFloorValue floor value :decimal
	TransactionKeyFloorValue = "floor_value"
	// TransactionKeyLoan loan id :uint64
	TransactionKeyLoan = "loan"
	// TransactionKeyInterest interest :decimal
	TransactionKeyInterest = "interest"
	// TransactionKeyDuration duration seconds :int64
	TransactionKeyDuration = "duration"
	// TransactionKeyTotalEth treasury balance after the operation :decimal
	TransactionKeyTotalEth = "total_eth"
	// TransactionKeyEthBorrowed account debt after the operation :decimal
	TransactionKeyEthBorrowed = "eth_borrowed"
	// TransactionKeyStatus loan status after the operation :string
	TransactionKeyStatus = "status"
)

// ExtraDataFormatter extra data formatter
type ExtraDataFormatter interface {
	Format() []byte
}

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	d := make(TransactionExtraData)
	return d
}

// NewTransactionExtraFrom extra data holding the json fields of v
func NewTransactionExtraFrom(v interface{}) TransactionExtraData {
	d := NewTransactionExtra()
	for _, f := range structs.New(v).Fields() {
		if !f.IsExported() {
			continue
		}

		name := strings.Split(f.Tag("json"), ",")[0]
		if name == "-" {
			continue
		}

		if name == "" {
			name = f.Name()
		}

		d.Put(name, f.Value())
	}

	return d
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction audit record of a committed engine operation
type Transaction struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Action    ActionType      `json:"action,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	Account   string          `sql:"size:64;index:idx_transactions_account" json:"account,omitempty"`
	Amount    decimal.Decimal `sql:"type:varchar(64)" json:"amount,omitempty"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
}

// Event name of the action
func (t *Transaction) Event() string {
	return t.Action.String()
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra ExtraDataFormatter) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// BuildTransaction new audit transaction
func BuildTransaction(traceID string, action ActionType, account string, amount decimal.Decimal, extra ExtraDataFormatter) *Transaction {
	t := &Transaction{
		Action:  action,
		TraceID: traceID,
		Account: account,
		Amount:  amount,
	}
	t.SetExtraData(extra)

	return t
}

// TransactionStore transaction store interface
type TransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, offset time.Time, limit int) ([]*Transaction, error)
	ListByAccount(ctx context.Context, account string, offset time.Time, limit int) ([]*Transaction, error)
}
