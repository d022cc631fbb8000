package request

import (
	"context"
)

type key int

const (
	accountKey key = iota
)

type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithAccount context with the calling account
func (c ContextX) WithAccount(account string) context.Context {
	return context.WithValue(c, accountKey, account)
}

// GetAccount get the calling account from context
func (c ContextX) GetAccount() (string, bool) {
	account, ok := c.Value(accountKey).(string)
	return account, ok && account != ""
}
