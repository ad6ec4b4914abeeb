package service

import (
	"github.com/spf13/viper"
)

// Catalog — доступные инструменты по категориям.
// Читается из configs/pairs.yaml, иначе дефолтный набор.
type Catalog struct {
	Forex  []string
	Crypto []string
}

func LoadCatalog() Catalog {
	v := viper.New()
	v.SetConfigName("pairs")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.SetDefault("forex", []string{
		"AEDCNY_otc", "AUDCAD_otc", "EURUSD_otc", "GBPJPY_otc", "USDJPY_otc",
	})
	v.SetDefault("crypto", []string{
		"BTCUSD_otc", "ETHUSD_otc", "DOGEUSD_otc", "AVAXUSD_otc",
	})
	_ = v.ReadInConfig() // нет файла — остаёмся на дефолтах

	return Catalog{
		Forex:  v.GetStringSlice("forex"),
		Crypto: v.GetStringSlice("crypto"),
	}
}

func (c Catalog) Contains(pair string) bool {
	for _, p := range c.Forex {
		if p == pair {
			return true
		}
	}
	for _, p := range c.Crypto {
		if p == pair {
			return true
		}
	}
	return false
}
