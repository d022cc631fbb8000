package lending

import (
	"nftlend/core"
	"nftlend/internal/risk"

	"github.com/shopspring/decimal"
)

// CollateralValue sum of the floor values of the tokens, unapproved projects count zero
// projects keyed by address
func CollateralValue(tokens []*core.DepositedToken, projects map[string]*core.Project) decimal.Decimal {
	value := decimal.Zero
	for _, token := range tokens {
		project, ok := projects[token.Project]
		if !ok {
			continue
		}

		value = value.Add(project.CollateralValue())
	}

	return value
}

// BorrowMax borrowing power of the tokens
func BorrowMax(tokens []*core.DepositedToken, projects map[string]*core.Project) decimal.Decimal {
	return risk.BorrowMax(CollateralValue(tokens, projects))
}

// Without tokens except the one identified by project and token id
func Without(tokens []*core.DepositedToken, project, tokenID string) []*core.DepositedToken {
	rest := make([]*core.DepositedToken, 0, len(tokens))
	for _, token := range tokens {
		if token.Project == project && token.TokenID == tokenID {
			continue
		}

		rest = append(rest, token)
	}

	return rest
}
