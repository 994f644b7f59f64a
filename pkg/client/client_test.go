package client

import (
	"context"
	"crypto/ed25519"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenforge/mint-server/pkg/mint"
	"github.com/tokenforge/mint-server/pkg/solana"
	"github.com/tokenforge/mint-server/pkg/solana/system"
	"github.com/tokenforge/mint-server/pkg/solana/token"
)

type fakeClient struct {
	mu sync.Mutex

	rent      uint64
	blockhash solana.Blockhash
	submitted []solana.Transaction
	accounts  map[string]solana.AccountInfo

	status     *solana.SignatureStatus
	statusGate chan struct{}
	submitErr  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		rent:     1_000_000,
		accounts: map[string]solana.AccountInfo{},
	}
}

func (f *fakeClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	info, ok := f.accounts[string(account)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (f *fakeClient) GetBalance(ed25519.PublicKey) (uint64, error) {
	return 0, nil
}

func (f *fakeClient) GetMinimumBalanceForRentExemption(uint64) (uint64, error) {
	return f.rent, nil
}

func (f *fakeClient) GetLatestBlockhash() (solana.Blockhash, error) {
	return f.blockhash, nil
}

func (f *fakeClient) GetSignatureStatus(sig solana.Signature, _ solana.Commitment) (*solana.SignatureStatus, error) {
	if f.statusGate != nil {
		<-f.statusGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != nil {
		return f.status, nil
	}
	return &solana.SignatureStatus{ConfirmationStatus: "confirmed"}, nil
}

func (f *fakeClient) GetSignatureStatuses([]solana.Signature) ([]*solana.SignatureStatus, error) {
	return nil, nil
}

func (f *fakeClient) GetSlot(solana.Commitment) (uint64, error) {
	return 0, nil
}

func (f *fakeClient) GetTokenAccountBalance(ed25519.PublicKey) (uint64, uint64, error) {
	return 0, 0, nil
}

func (f *fakeClient) RequestAirdrop(ed25519.PublicKey, uint64, solana.Commitment) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func (f *fakeClient) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitErr != nil {
		return txn.Signatures[0], f.submitErr
	}

	f.submitted = append(f.submitted, txn)
	return txn.Signatures[0], nil
}

func testKeypair(t *testing.T) ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return priv
}

func testKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func TestInitializeMint(t *testing.T) {
	fc := newFakeClient()
	payer := testKeypair(t)
	programID := testKey(t)
	mintAccount := testKey(t)
	authority := testKey(t)

	m := NewMinter(fc, programID, payer)

	_, err := m.InitializeMint(context.Background(), mintAccount, authority, nil, 6)
	require.NoError(t, err)
	require.Len(t, fc.submitted, 1)

	txn := fc.submitted[0]

	transfer, err := system.DecompileTransfer(txn.Message, 0)
	require.NoError(t, err)
	assert.Equal(t, payer.Public().(ed25519.PublicKey), transfer.Sender)
	assert.Equal(t, mintAccount, transfer.Receiver)
	assert.Equal(t, fc.rent, transfer.Lamports)

	programIx := txn.Message.Instructions[1]
	assert.Equal(t, programID, txn.Message.Accounts[programIx.ProgramIndex])

	decoded, err := mint.DecodeInstruction(programIx.Data)
	require.NoError(t, err)
	init, ok := decoded.(*mint.InitializeMint)
	require.True(t, ok)
	assert.EqualValues(t, 6, init.Decimals)
	assert.Equal(t, authority, init.MintAuthority)
	assert.Empty(t, init.FreezeAuthority)

	require.Len(t, programIx.Accounts, 2)
	assert.Equal(t, mintAccount, txn.Message.Accounts[programIx.Accounts[0]])
	assert.Equal(t, system.RentSysVar, txn.Message.Accounts[programIx.Accounts[1]])

	// signed by the payer over the compiled message
	assert.True(t, ed25519.Verify(payer.Public().(ed25519.PublicKey), txn.Message.Marshal(), txn.Signatures[0][:]))
}

func TestMintTo(t *testing.T) {
	fc := newFakeClient()
	payer := testKeypair(t)
	programID := testKey(t)
	mintAccount := testKey(t)
	dest := testKey(t)
	authority := testKeypair(t)

	m := NewMinter(fc, programID, payer)

	_, err := m.MintTo(context.Background(), mintAccount, dest, authority, 1_000_000)
	require.NoError(t, err)
	require.Len(t, fc.submitted, 1)

	txn := fc.submitted[0]
	ix := txn.Message.Instructions[0]
	assert.Equal(t, programID, txn.Message.Accounts[ix.ProgramIndex])

	decoded, err := mint.DecodeInstruction(ix.Data)
	require.NoError(t, err)
	mintTo, ok := decoded.(*mint.MintTo)
	require.True(t, ok)
	assert.EqualValues(t, 1_000_000, mintTo.Amount)

	require.Len(t, ix.Accounts, 3)
	assert.Equal(t, mintAccount, txn.Message.Accounts[ix.Accounts[0]])
	assert.Equal(t, dest, txn.Message.Accounts[ix.Accounts[1]])
	assert.Equal(t, authority.Public().(ed25519.PublicKey), txn.Message.Accounts[ix.Accounts[2]])

	// both the payer and the authority signed
	require.Len(t, txn.Signatures, 2)
	message := txn.Message.Marshal()
	assert.True(t, ed25519.Verify(payer.Public().(ed25519.PublicKey), message, txn.Signatures[0][:]))
	assert.True(t, ed25519.Verify(authority.Public().(ed25519.PublicKey), message, txn.Signatures[1][:]))
}

func TestEnsureAssociatedAccount(t *testing.T) {
	fc := newFakeClient()
	payer := testKeypair(t)
	programID := testKey(t)
	mintAccount := testKey(t)
	wallet := testKey(t)

	m := NewMinter(fc, programID, payer)

	expected, err := token.GetAssociatedAccount(wallet, mintAccount)
	require.NoError(t, err)

	// account does not exist yet: a create transaction is submitted
	addr, err := m.EnsureAssociatedAccount(context.Background(), wallet, mintAccount)
	require.NoError(t, err)
	assert.Equal(t, expected, addr)
	require.Len(t, fc.submitted, 1)

	created, err := token.DecompileCreateAssociatedAccountIdempotent(fc.submitted[0].Message, 0)
	require.NoError(t, err)
	assert.Equal(t, wallet, created.Owner)
	assert.Equal(t, mintAccount, created.Mint)
	assert.Equal(t, expected, created.Address)

	// account exists: nothing new is submitted
	fc.mu.Lock()
	fc.accounts[string(expected)] = solana.AccountInfo{Owner: token.ProgramKey}
	fc.mu.Unlock()

	addr, err = m.EnsureAssociatedAccount(context.Background(), wallet, mintAccount)
	require.NoError(t, err)
	assert.Equal(t, expected, addr)
	assert.Len(t, fc.submitted, 1)
}

func TestMintTo_LedgerError(t *testing.T) {
	fc := newFakeClient()
	fc.status = &solana.SignatureStatus{
		ConfirmationStatus: "confirmed",
		ErrorResult:        solana.NewTransactionError(solana.TransactionErrorInstructionError),
	}

	payer := testKeypair(t)
	m := NewMinter(fc, testKey(t), payer)

	sig, err := m.MintTo(context.Background(), testKey(t), testKey(t), testKeypair(t), 1)
	require.Error(t, err)

	// the failing signature is part of the surfaced error
	assert.NotEqual(t, solana.Signature{}, sig)
}

func TestSubmit_ContextDeadline(t *testing.T) {
	fc := newFakeClient()
	fc.statusGate = make(chan struct{})
	defer close(fc.statusGate)

	payer := testKeypair(t)
	m := NewMinter(fc, testKey(t), payer)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := m.MintTo(ctx, testKey(t), testKey(t), testKeypair(t), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
