package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"nftlend/core"

	"github.com/shopspring/decimal"
)

// ErrFrozen transfers to the opponent are refused
var ErrFrozen = errors.New("opponent frozen")

// Ledger in memory wallet recording the amount paid to every opponent
type Ledger struct {
	mu        sync.Mutex
	balances  map[string]decimal.Decimal
	transfers map[string]*core.Transfer
	frozen    map[string]bool
}

// NewLedger new in memory wallet
func NewLedger() *Ledger {
	return &Ledger{
		balances:  map[string]decimal.Decimal{},
		transfers: map[string]*core.Transfer{},
		frozen:    map[string]bool{},
	}
}

// Freeze refuse transfers to opponent
func (l *Ledger) Freeze(opponent string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.frozen[core.NormalizeAddress(opponent)] = true
}

func (l *Ledger) Transfer(ctx context.Context, transfer *core.Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.transfers[transfer.TraceID]; ok {
		return nil
	}

	opponent := core.NormalizeAddress(transfer.OpponentID)
	if l.frozen[opponent] {
		return fmt.Errorf("%w: %s", ErrFrozen, opponent)
	}

	t := *transfer
	l.transfers[transfer.TraceID] = &t
	l.balances[opponent] = l.balances[opponent].Add(transfer.Amount)
	return nil
}

// Balance total paid to opponent
func (l *Ledger) Balance(opponent string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[core.NormalizeAddress(opponent)]
}

// Transfers count of distinct transfers
func (l *Ledger) Transfers() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.transfers)
}
