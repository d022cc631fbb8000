package config

import (
	"time"

	"nftlend/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("NFTLEND")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(cfg *core.Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "nftlend"
	}

	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.DB.Dialect == "" {
		cfg.DB.Dialect = "sqlite3"
		cfg.DB.Host = "nftlend.db"
	}

	// 1 ETH = 1000 USD with 8 decimals
	if cfg.PriceOracle.Decimals == 0 {
		cfg.PriceOracle.Decimals = 8
	}

	if cfg.PriceOracle.EndPoint != "" && cfg.PriceOracle.MaxAge == 0 {
		cfg.PriceOracle.MaxAge = 10 * time.Minute
	}

	for idx, admin := range cfg.Admins {
		cfg.Admins[idx] = core.NormalizeAddress(admin)
	}
}
