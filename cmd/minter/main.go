package main

import (
	"context"
	"crypto/ed25519"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tokenforge/mint-server/pkg/client"
	"github.com/tokenforge/mint-server/pkg/keypair"
	"github.com/tokenforge/mint-server/pkg/solana"
	"github.com/tokenforge/mint-server/pkg/solana/token"
)

var configPath = flag.String("config", "config.yaml", "configuration file path")

func main() {
	flag.Parse()

	log := logrus.StandardLogger().WithField("type", "cmd/minter")

	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has to
	// search for a default config file because one hasn't been explicitly
	// set, so check for an explicitly configured file ourselves.
	if _, err := os.Stat(*configPath); err == nil {
		viper.SetConfigFile(*configPath)
	} else if !os.IsNotExist(err) {
		log.WithError(err).Error("failed to check if config exists")
		os.Exit(1)
	}

	err := viper.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		log.WithError(err).Error("failed to load config")
		os.Exit(1)
	}

	conf := defaultConfig
	if err := viper.Unmarshal(&conf); err != nil {
		log.WithError(err).Error("failed to unmarshal config")
		os.Exit(1)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	if level, err := logrus.ParseLevel(strings.ToLower(conf.LogLevel)); err != nil {
		log.WithField("log_level", conf.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	if err := run(log, conf); err != nil {
		log.WithError(err).Error("minter failed")
		os.Exit(1)
	}
}

func run(log *logrus.Entry, conf config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	programID, err := base58.Decode(conf.ProgramID)
	if err != nil || len(programID) != ed25519.PublicKeySize {
		log.WithField("program_id", conf.ProgramID).Error("invalid program id")
		os.Exit(1)
	}

	payer, err := loadOrGenerate(conf.PayerKeypair)
	if err != nil {
		return err
	}
	mintKey, err := loadOrGenerate(conf.MintKeypair)
	if err != nil {
		return err
	}
	authority, err := loadOrGenerate(conf.AuthorityKeypair)
	if err != nil {
		return err
	}

	mintAccount := mintKey.Public().(ed25519.PublicKey)
	authorityAccount := authority.Public().(ed25519.PublicKey)

	sc := solana.New(solana.ResolveEndpoint(conf.Endpoint))

	if conf.AirdropLamports > 0 {
		balance, err := sc.GetBalance(payer.Public().(ed25519.PublicKey))
		if err != nil {
			return err
		}
		if balance < conf.AirdropLamports {
			sig, err := sc.RequestAirdrop(payer.Public().(ed25519.PublicKey), conf.AirdropLamports, solana.CommitmentConfirmed)
			if err != nil {
				return err
			}
			log.WithField("signature", base58.Encode(sig[:])).Info("requested airdrop for payer")
		}
	}

	minter := client.NewMinter(sc, programID, payer)

	tc := token.NewClient(sc, mintAccount)
	if _, err := tc.GetMint(solana.CommitmentConfirmed); err == nil {
		log.WithField("mint", base58.Encode(mintAccount)).Info("mint already initialized, skipping")
	} else {
		if _, err := minter.InitializeMint(ctx, mintAccount, authorityAccount, nil, conf.Decimals); err != nil {
			return err
		}
	}

	dest, err := minter.EnsureAssociatedAccount(ctx, authorityAccount, mintAccount)
	if err != nil {
		return err
	}

	if _, err := minter.MintTo(ctx, mintAccount, dest, authority, conf.Amount); err != nil {
		return err
	}

	balance, slot, err := sc.GetTokenAccountBalance(dest)
	if err != nil {
		return err
	}
	state, err := tc.GetMint(solana.CommitmentConfirmed)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"mint":        base58.Encode(mintAccount),
		"destination": base58.Encode(dest),
		"balance":     balance,
		"supply":      state.Supply,
		"slot":        slot,
	}).Info("mint complete")

	return nil
}

func loadOrGenerate(path string) (ed25519.PrivateKey, error) {
	key, err := keypair.Load(path)
	if err == nil {
		return key, nil
	}
	if !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}

	key, err = keypair.Generate()
	if err != nil {
		return nil, err
	}
	return key, keypair.Save(path, key)
}
