// Package client assembles, signs, submits, and confirms minting
// transactions against a ledger node.
package client

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tokenforge/mint-server/pkg/mint"
	"github.com/tokenforge/mint-server/pkg/solana"
	"github.com/tokenforge/mint-server/pkg/solana/system"
	"github.com/tokenforge/mint-server/pkg/solana/token"
)

// Minter builds and submits transactions carrying the mint program's
// instructions. On-ledger failures are surfaced verbatim together with the
// failing transaction signature; validation failures are never retried.
type Minter struct {
	log *logrus.Entry
	sc  solana.Client

	// programID is the mint program processing the instructions.
	programID ed25519.PublicKey

	payer ed25519.PrivateKey
}

func NewMinter(sc solana.Client, programID ed25519.PublicKey, payer ed25519.PrivateKey) *Minter {
	return &Minter{
		log:       logrus.StandardLogger().WithField("type", "client/minter"),
		sc:        sc,
		programID: programID,
		payer:     payer,
	}
}

// InitializeMint funds the mint account to the rent-exempt minimum and
// submits the program's InitializeMint instruction for it. The mint account
// is freshly allocated and assigned by the program, funded from its own
// balance.
func (m *Minter) InitializeMint(ctx context.Context, mintAccount, mintAuthority, freezeAuthority ed25519.PublicKey, decimals uint8) (solana.Signature, error) {
	rent, err := m.sc.GetMinimumBalanceForRentExemption(token.MintSize)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to get rent-exempt minimum")
	}

	instruction := &mint.InitializeMint{
		Decimals:        decimals,
		MintAuthority:   mintAuthority,
		FreezeAuthority: freezeAuthority,
	}

	txn := solana.NewTransaction(
		m.payer.Public().(ed25519.PublicKey),
		system.Transfer(m.payer.Public().(ed25519.PublicKey), mintAccount, rent),
		solana.NewInstruction(
			m.programID,
			instruction.Encode(),
			solana.NewAccountMeta(mintAccount, false),
			solana.NewReadonlyAccountMeta(system.RentSysVar, false),
		),
	)

	sig, err := m.submitAndConfirm(ctx, &txn, m.payer)
	if err != nil {
		return sig, err
	}

	m.log.WithFields(logrus.Fields{
		"mint":      base58.Encode(mintAccount),
		"decimals":  decimals,
		"signature": base58.Encode(sig[:]),
	}).Info("initialized mint")

	return sig, nil
}

// EnsureAssociatedAccount creates the wallet's associated token account for
// the mint if it does not exist yet, and returns its address.
func (m *Minter) EnsureAssociatedAccount(ctx context.Context, wallet, mintAccount ed25519.PublicKey) (ed25519.PublicKey, error) {
	addr, err := token.GetAssociatedAccount(wallet, mintAccount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive associated account")
	}

	_, err = m.sc.GetAccountInfo(addr, solana.CommitmentConfirmed)
	if err == nil {
		return addr, nil
	}
	if err != solana.ErrNoAccountInfo {
		return nil, errors.Wrap(err, "failed to check associated account")
	}

	instruction, _, err := token.CreateAssociatedTokenAccountIdempotent(
		m.payer.Public().(ed25519.PublicKey),
		wallet,
		mintAccount,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build create instruction")
	}

	txn := solana.NewTransaction(m.payer.Public().(ed25519.PublicKey), instruction)
	if _, err := m.submitAndConfirm(ctx, &txn, m.payer); err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"wallet":  base58.Encode(wallet),
		"account": base58.Encode(addr),
	}).Info("created associated token account")

	return addr, nil
}

// MintTo submits the program's MintTo instruction, minting amount tokens
// into the destination token account. The authority keypair signs the
// transaction.
func (m *Minter) MintTo(ctx context.Context, mintAccount, dest ed25519.PublicKey, authority ed25519.PrivateKey, amount uint64) (solana.Signature, error) {
	instruction := &mint.MintTo{Amount: amount}

	txn := solana.NewTransaction(
		m.payer.Public().(ed25519.PublicKey),
		solana.NewInstruction(
			m.programID,
			instruction.Encode(),
			solana.NewAccountMeta(mintAccount, false),
			solana.NewAccountMeta(dest, false),
			solana.NewReadonlyAccountMeta(authority.Public().(ed25519.PublicKey), true),
		),
	)

	sig, err := m.submitAndConfirm(ctx, &txn, m.payer, authority)
	if err != nil {
		return sig, err
	}

	m.log.WithFields(logrus.Fields{
		"mint":        base58.Encode(mintAccount),
		"destination": base58.Encode(dest),
		"amount":      amount,
		"signature":   base58.Encode(sig[:]),
	}).Info("minted tokens")

	return sig, nil
}

// submitAndConfirm signs and submits the transaction, then waits for it to
// reach the confirmed commitment. A context deadline surfaces as a client
// error; nothing on-ledger is rolled back.
func (m *Minter) submitAndConfirm(ctx context.Context, txn *solana.Transaction, signers ...ed25519.PrivateKey) (solana.Signature, error) {
	blockhash, err := m.sc.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to get latest blockhash")
	}

	txn.SetBlockhash(blockhash)
	if err := txn.Sign(signers...); err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to sign transaction")
	}

	sig, err := m.sc.SubmitTransaction(*txn, solana.CommitmentConfirmed)
	if err != nil {
		return sig, errors.Wrapf(err, "transaction %s failed", base58.Encode(sig[:]))
	}

	type confirmation struct {
		status *solana.SignatureStatus
		err    error
	}

	confirmed := make(chan confirmation, 1)
	go func() {
		status, err := m.sc.GetSignatureStatus(sig, solana.CommitmentConfirmed)
		confirmed <- confirmation{status: status, err: err}
	}()

	select {
	case <-ctx.Done():
		return sig, errors.Wrapf(ctx.Err(), "timed out waiting for confirmation of %s", base58.Encode(sig[:]))
	case c := <-confirmed:
		if c.err != nil {
			return sig, errors.Wrapf(c.err, "failed to confirm %s", base58.Encode(sig[:]))
		}
		if c.status.ErrorResult != nil {
			return sig, errors.Wrapf(c.status.ErrorResult, "transaction %s failed", base58.Encode(sig[:]))
		}
	}

	return sig, nil
}
