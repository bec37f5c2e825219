// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xp

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/constants"
	"github.com/ava-labs/avalanche-sdk-go/utils/crypto/secp256k1"
	"github.com/ava-labs/avalanche-sdk-go/utils/formatting"
	"github.com/ava-labs/avalanche-sdk-go/utils/hashing"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"
	"github.com/ava-labs/avalanche-sdk-go/wallet/chain"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary"
	"github.com/ava-labs/avalanche-sdk-go/wallet/subnet/primary/common"
)

var (
	ErrMissingTx          = errors.New("no tx provided")
	ErrNoUTXOsForSigner   = errors.New("no UTXOs found for signer address")
	ErrCredentialMismatch = errors.New("credentials don't match the tx inputs")

	errInvalidSigIndex = errors.New("signature index exceeds the owner addresses")
)

// Auth is a subnet authorization: the signers in [Owners.Addrs] at the
// positions listed in [Indices]. Its signatures are held by the last
// credential of the tx.
type Auth struct {
	Owners  *secp256k1fx.OutputOwners
	Indices []uint32
}

// position returns where [addr] appears among the authorized signers.
func (a *Auth) position(addr ids.ShortID) (uint32, bool, error) {
	for i, index := range a.Indices {
		if int(index) >= len(a.Owners.Addrs) {
			return 0, false, fmt.Errorf("%w: %d >= %d", errInvalidSigIndex, index, len(a.Owners.Addrs))
		}
		if a.Owners.Addrs[index] == addr {
			return uint32(i), true, nil
		}
	}
	return 0, false, nil
}

// SigIndex locates a signature: the credential it was written to and the
// position of the signer in the owners of the matching input.
type SigIndex struct {
	Credential uint32 `json:"credential"`
	Address    uint32 `json:"address"`
}

type Signature struct {
	// Signature is the hex encoded 65 byte recoverable signature.
	Signature  string     `json:"signature"`
	SigIndices []SigIndex `json:"sigIndices"`
}

type SignRequest struct {
	// Tx is a tx produced by a builder. Either Tx or TxHex must be set.
	Tx *chain.Tx
	// TxHex is a signed or unsigned tx, with or without a checksum.
	TxHex      string
	ChainAlias string
	// Signer overrides the wallet's signers.
	Signer Signer

	SubnetAuth  *Auth
	DisableAuth *Auth

	// Options are used when fetching UTXOs for the signer.
	Options []common.Option
}

func (r *SignRequest) alias() string {
	if r.ChainAlias == "" && r.Tx != nil {
		return r.Tx.ChainAlias
	}
	return r.ChainAlias
}

func (r *SignRequest) auth() *Auth {
	if r.SubnetAuth != nil {
		return r.SubnetAuth
	}
	return r.DisableAuth
}

func (r *SignRequest) hex() (string, error) {
	if r.TxHex != "" {
		return r.TxHex, nil
	}
	if r.Tx == nil {
		return "", ErrMissingTx
	}
	return r.Tx.Hex()
}

type SignResult struct {
	SignedTxHex string
	Signatures  []Signature
	ChainAlias  string

	// Tx is the signed tx. Nil when a remote signer was used.
	Tx *chain.Tx
}

// SignXPTransaction adds the signatures of the resolved signer to the tx of
// [req].
//
// A local signer writes its signature into every credential slot whose
// owner address is its own. The owners are taken from the tx when it was
// built locally, and otherwise from the UTXOs of the signer. A remote signer
// returns whatever the wallet produced.
func (w *Wallet) SignXPTransaction(ctx context.Context, req *SignRequest) (*SignResult, error) {
	signer, err := w.resolveSigner(req.Signer)
	if err != nil {
		return nil, err
	}

	switch signer := signer.(type) {
	case *LocalSigner:
		return w.signLocal(ctx, signer, req)
	case *RemoteSigner:
		return w.signRemote(ctx, signer, req)
	default:
		return nil, ErrNoSigner
	}
}

func (w *Wallet) signRemote(ctx context.Context, signer *RemoteSigner, req *SignRequest) (*SignResult, error) {
	txHex, err := req.hex()
	if err != nil {
		return nil, err
	}
	alias := req.alias()
	signedTxHex, err := signer.SignTransaction(ctx, signArgs(req, txHex, alias))
	if err != nil {
		return nil, err
	}
	return &SignResult{
		SignedTxHex: signedTxHex,
		ChainAlias:  alias,
	}, nil
}

func signArgs(req *SignRequest, txHex, alias string) *SignTransactionArgs {
	args := &SignTransactionArgs{
		TransactionHex: txHex,
		ChainAlias:     alias,
	}
	if req.Tx != nil {
		for _, in := range req.Tx.Inputs {
			if !in.IsEVM {
				args.UTXOIDs = append(args.UTXOIDs, in.UTXOID.String())
			}
		}
	}
	if req.SubnetAuth != nil {
		args.SubnetAuth = req.SubnetAuth.Indices
	}
	if req.DisableAuth != nil {
		args.DisableAuth = req.DisableAuth.Indices
	}
	return args
}

func (w *Wallet) signLocal(ctx context.Context, signer *LocalSigner, req *SignRequest) (*SignResult, error) {
	tx, err := parseRequestTx(req)
	if err != nil {
		return nil, err
	}

	auth := req.auth()
	creds, err := prepareCredentials(tx, auth)
	if err != nil {
		return nil, err
	}

	unsignedHash := hashing.ComputeHash256(tx.UnsignedBytes())
	sigBytes, err := signer.SignHash(unsignedHash)
	if err != nil {
		return nil, err
	}
	var sig [secp256k1.SignatureLen]byte
	copy(sig[:], sigBytes)

	owners := tx.Owners
	if owners == nil && needsOwners(tx) {
		owners, err = w.signerOwners(ctx, signer, tx, req.Options)
		if err != nil {
			return nil, err
		}
	}

	var (
		addr       = signer.Address()
		ethAddr    = signer.EthAddress()
		sigIndices []SigIndex
	)
	for i, in := range tx.Inputs {
		cred := creds[i]
		if in.IsEVM {
			if in.EVMAddress == ethAddr {
				cred.Sigs[0] = sig
				sigIndices = append(sigIndices, SigIndex{Credential: uint32(i)})
			}
			continue
		}

		owner, ok := owners[in.UTXOID.InputID()]
		if !ok {
			continue
		}
		for slot, addrIndex := range in.SigIndices {
			if int(addrIndex) >= len(owner.Addrs) {
				return nil, fmt.Errorf("%w: input %d index %d >= %d", errInvalidSigIndex, i, addrIndex, len(owner.Addrs))
			}
			if owner.Addrs[addrIndex] != addr {
				continue
			}
			cred.Sigs[slot] = sig
			sigIndices = append(sigIndices, SigIndex{
				Credential: uint32(i),
				Address:    addrIndex,
			})
		}
	}

	if auth != nil {
		pos, ok, err := auth.position(addr)
		if err != nil {
			return nil, err
		}
		if ok {
			authIndex := len(creds) - 1
			creds[authIndex].Sigs[pos] = sig
			sigIndices = append(sigIndices, SigIndex{
				Credential: uint32(authIndex),
				Address:    pos,
			})
		}
	}

	if err := tx.SetCredentials(creds); err != nil {
		return nil, err
	}
	signedTxHex, err := tx.Hex()
	if err != nil {
		return nil, err
	}

	sigHex, err := formatting.Encode(formatting.HexNC, sig[:])
	if err != nil {
		return nil, err
	}

	w.log().Debug("signed tx",
		zap.String("chain", tx.ChainAlias),
		zap.Stringer("txID", tx.ID()),
		zap.Int("numSignatures", len(sigIndices)),
	)
	return &SignResult{
		SignedTxHex: signedTxHex,
		Signatures: []Signature{{
			Signature:  sigHex,
			SigIndices: sigIndices,
		}},
		ChainAlias: tx.ChainAlias,
		Tx:         tx,
	}, nil
}

func parseRequestTx(req *SignRequest) (*chain.Tx, error) {
	if req.Tx != nil {
		return req.Tx, nil
	}
	if req.TxHex == "" {
		return nil, ErrMissingTx
	}
	txBytes, err := decodeHex(req.TxHex)
	if err != nil {
		return nil, err
	}
	return chain.Parse(req.ChainAlias, txBytes)
}

// decodeHex accepts hex with or without the trailing checksum.
func decodeHex(s string) ([]byte, error) {
	b, err := formatting.Decode(formatting.Hex, s)
	if err == nil {
		return b, nil
	}
	if b, ncErr := formatting.Decode(formatting.HexNC, s); ncErr == nil {
		return b, nil
	}
	return nil, err
}

// prepareCredentials returns copies of the credentials of [tx], creating
// empty ones if the tx has none and a trailing auth credential if [auth]
// needs one.
func prepareCredentials(tx *chain.Tx, auth *Auth) ([]*secp256k1fx.Credential, error) {
	existing := tx.Credentials()
	numInputs := len(tx.Inputs)

	var creds []*secp256k1fx.Credential
	if len(existing) == 0 {
		creds = make([]*secp256k1fx.Credential, numInputs, numInputs+1)
		for i, in := range tx.Inputs {
			creds[i] = secp256k1fx.NewEmptyCredential(len(in.SigIndices))
		}
	} else {
		creds = make([]*secp256k1fx.Credential, len(existing), len(existing)+1)
		for i, cred := range existing {
			creds[i] = &secp256k1fx.Credential{Sigs: slices.Clone(cred.Sigs)}
		}
	}

	if len(creds) < numInputs {
		return nil, fmt.Errorf("%w: %d credentials for %d inputs", ErrCredentialMismatch, len(creds), numInputs)
	}
	for i, in := range tx.Inputs {
		if numSigs, expected := len(creds[i].Sigs), len(in.SigIndices); numSigs != expected {
			return nil, fmt.Errorf("%w: credential %d has %d signatures but needs %d", ErrCredentialMismatch, i, numSigs, expected)
		}
	}

	if auth == nil {
		return creds, nil
	}
	if len(creds) == numInputs {
		creds = append(creds, secp256k1fx.NewEmptyCredential(len(auth.Indices)))
	}
	authCred := creds[len(creds)-1]
	if numSigs, expected := len(authCred.Sigs), len(auth.Indices); numSigs != expected {
		return nil, fmt.Errorf("%w: auth credential has %d signatures but needs %d", ErrCredentialMismatch, numSigs, expected)
	}
	return creds, nil
}

// needsOwners reports whether [tx] consumes any UTXOs.
func needsOwners(tx *chain.Tx) bool {
	for _, in := range tx.Inputs {
		if !in.IsEVM {
			return true
		}
	}
	return false
}

// signerOwners fetches the UTXOs of [signer] that [tx] could be consuming and
// returns their owners keyed by UTXO ID.
func (w *Wallet) signerOwners(
	ctx context.Context,
	signer *LocalSigner,
	tx *chain.Tx,
	options []common.Option,
) (map[ids.ID]*secp256k1fx.OutputOwners, error) {
	client, err := w.chain(tx.ChainAlias)
	if err != nil {
		return nil, err
	}
	c, err := chain.Codec(tx.ChainAlias)
	if err != nil {
		return nil, err
	}
	addr, err := signer.FormattedAddress(tx.ChainAlias, w.Context.HRP)
	if err != nil {
		return nil, err
	}

	// Imported inputs live in shared memory, the others in the chain's state.
	// The C-Chain has no native UTXOs.
	var sourceChains []string
	if tx.ChainAlias != constants.CChainAlias {
		sourceChains = append(sourceChains, "")
	}
	if tx.SourceChain != ids.Empty {
		sourceChains = append(sourceChains, tx.SourceChain.String())
	}

	owners := make(map[ids.ID]*secp256k1fx.OutputOwners)
	for _, sourceChain := range sourceChains {
		utxos, err := primary.FetchUTXOs(ctx, client, c, []string{addr}, sourceChain, options...)
		if err != nil {
			return nil, err
		}
		for _, utxo := range utxos {
			owner, err := common.OutputOwners(utxo.Out)
			if err != nil {
				// Outputs we can't sign for are irrelevant.
				continue
			}
			owners[utxo.InputID()] = owner
		}
	}
	if len(owners) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoUTXOsForSigner, addr)
	}
	return owners, nil
}
