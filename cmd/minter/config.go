package main

import (
	"github.com/spf13/viper"
)

type config struct {
	LogLevel string `mapstructure:"log_level"`

	Endpoint  string `mapstructure:"endpoint"`
	ProgramID string `mapstructure:"program_id"`

	PayerKeypair     string `mapstructure:"payer_keypair"`
	MintKeypair      string `mapstructure:"mint_keypair"`
	AuthorityKeypair string `mapstructure:"authority_keypair"`

	Decimals uint8  `mapstructure:"decimals"`
	Amount   uint64 `mapstructure:"amount"`

	// AirdropLamports funds the payer on clusters with a faucet. Set to 0
	// when the payer is funded out of band.
	AirdropLamports uint64 `mapstructure:"airdrop_lamports"`
}

var defaultConfig = config{
	LogLevel: "info",

	Endpoint: "http://localhost:8899",

	PayerKeypair:     "payer.json",
	MintKeypair:      "mint.json",
	AuthorityKeypair: "authority.json",

	Decimals: 6,
	Amount:   1_000_000,

	AirdropLamports: 1_000_000_000,
}

func init() {
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	_ = viper.BindEnv("endpoint", "ENDPOINT")
	_ = viper.BindEnv("program_id", "PROGRAM_ID")

	_ = viper.BindEnv("payer_keypair", "PAYER_KEYPAIR")
	_ = viper.BindEnv("mint_keypair", "MINT_KEYPAIR")
	_ = viper.BindEnv("authority_keypair", "AUTHORITY_KEYPAIR")

	_ = viper.BindEnv("decimals", "DECIMALS")
	_ = viper.BindEnv("amount", "AMOUNT")

	_ = viper.BindEnv("airdrop_lamports", "AIRDROP_LAMPORTS")
}
