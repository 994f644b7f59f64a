package mint

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/tokenforge/mint-server/pkg/solana/token"
)

// Processor executes minting instructions against a token ledger. Program
// ids are explicit configuration so the processor can run against fake ids
// in isolation.
type Processor struct {
	log *logrus.Entry

	programID       ed25519.PublicKey
	ledgerProgramID ed25519.PublicKey
	ledger          TokenLedger
}

func NewProcessor(programID, ledgerProgramID ed25519.PublicKey, ledger TokenLedger) *Processor {
	return &Processor{
		log:             logrus.StandardLogger().WithField("type", "mint/processor"),
		programID:       programID,
		ledgerProgramID: ledgerProgramID,
		ledger:          ledger,
	}
}

// Process is the program entrypoint: it decodes the instruction bytes,
// validates the account list for the decoded variant, and invokes the token
// ledger. Each call is a single linear pass; failures abort before any
// mutation and surface as one of the sentinel errors in this package.
func (p *Processor) Process(accounts []*AccountRef, data []byte) error {
	instruction, err := DecodeInstruction(data)
	if err != nil {
		return err
	}

	switch i := instruction.(type) {
	case *InitializeMint:
		return p.initializeMint(accounts, i)
	case *MintTo:
		return p.mintTo(accounts, i)
	}

	return ErrInvalidInstructionData
}

func (p *Processor) initializeMint(accounts []*AccountRef, instruction *InitializeMint) error {
	if len(accounts) < 1 {
		return ErrNotEnoughAccounts
	}

	mintAccount := accounts[0]

	minBalance := p.ledger.MinimumBalance(token.MintSize)
	if err := validateInitializeMint(mintAccount, p.ledgerProgramID, minBalance); err != nil {
		return err
	}

	if len(mintAccount.Data) == 0 {
		if err := p.ledger.CreateAccount(mintAccount, p.ledgerProgramID, token.MintSize); err != nil {
			return err
		}
	}

	if err := p.ledger.InitializeMint(mintAccount, instruction.Decimals, instruction.MintAuthority, instruction.FreezeAuthority); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"method":   "initializeMint",
		"mint":     base58.Encode(mintAccount.Address),
		"decimals": instruction.Decimals,
	}).Debug("initialized mint")

	return nil
}

func (p *Processor) mintTo(accounts []*AccountRef, instruction *MintTo) error {
	if len(accounts) < 3 {
		return ErrNotEnoughAccounts
	}

	mintAccount, dest, authority := accounts[0], accounts[1], accounts[2]

	if err := validateMintTo(p.programID, p.ledgerProgramID, mintAccount, dest, authority); err != nil {
		return err
	}

	if err := p.ledger.MintTo(mintAccount, dest, instruction.Amount); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"method":      "mintTo",
		"mint":        base58.Encode(mintAccount.Address),
		"destination": base58.Encode(dest.Address),
		"amount":      instruction.Amount,
	}).Debug("minted tokens")

	return nil
}
