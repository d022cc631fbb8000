package core

import (
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
)

// Config nftlend config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Custodian   Custodian   `json:"custodian"`
	Wallet      Wallet      `json:"wallet"`
	Admins      []string    `json:"admins"`
}

// IsAdmin check if the account is admin
func (c *Config) IsAdmin(account string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	return govalidator.IsIn(NormalizeAddress(account), c.Admins...)
}

// App app config
type App struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	// Simulate run the custodian and the wallet in memory
	Simulate bool `json:"simulate"`
}

// PriceOracle price feed config
//
// the feed answer is a fixed point number with Decimals digits, e.g.
// answer 100000000000 with 8 decimals means 1 ETH = 1000 USD
type PriceOracle struct {
	EndPoint string        `json:"end_point"`
	Decimals int32         `json:"decimals"`
	Answer   string        `json:"answer"`
	MaxAge   time.Duration `json:"max_age"`
}

// Custodian remote collateral custodian config
type Custodian struct {
	EndPoint string `json:"end_point"`
}

// Wallet remote funds transfer config
type Wallet struct {
	EndPoint string `json:"end_point"`
	Sender   string `json:"sender"`
}
