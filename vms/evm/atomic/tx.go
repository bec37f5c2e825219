// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package atomic

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ava-labs/avalanche-sdk-go/codec"
	"github.com/ava-labs/avalanche-sdk-go/ids"
	"github.com/ava-labs/avalanche-sdk-go/utils/hashing"
	"github.com/ava-labs/avalanche-sdk-go/utils/set"
	"github.com/ava-labs/avalanche-sdk-go/utils/wrappers"
	"github.com/ava-labs/avalanche-sdk-go/vms/components/avax"
	"github.com/ava-labs/avalanche-sdk-go/vms/secp256k1fx"

	safemath "github.com/ava-labs/avalanche-sdk-go/utils/math"
)

const (
	X2CRateUint64       uint64 = 1_000_000_000
	x2cRateMinus1Uint64 uint64 = X2CRateUint64 - 1

	// AtomicTxIntrinsicGas is charged on every atomic tx once the fixed fee
	// is enabled.
	AtomicTxIntrinsicGas uint64 = 10_000

	// MaxEVMIOs bounds the number of EVM inputs or outputs decoded from a tx.
	MaxEVMIOs = 1024
)

var (
	_ codec.Packable = (*Tx)(nil)

	ErrWrongNetworkID         = errors.New("tx was issued with a different network ID")
	ErrWrongChainID           = errors.New("tx has wrong chain ID")
	ErrNilTx                  = errors.New("tx is nil")
	ErrNoValueInput           = errors.New("input has no value")
	ErrNoImportInputs         = errors.New("tx has no imported inputs")
	ErrNoExportOutputs        = errors.New("tx has no export outputs")
	ErrOutputsNotSortedUnique = errors.New("outputs not sorted and unique")
	ErrInputsNotSortedUnique  = errors.New("inputs not sorted and unique")

	errNoValueOutput = errors.New("output has no value")
	errNilOutput     = errors.New("nil output")
	errNilInput      = errors.New("nil input")
	errEmptyAssetID  = errors.New("empty asset ID is not valid")
	errNilBaseFee    = errors.New("cannot calculate dynamic fee with nil baseFee")
	errFeeOverflow   = errors.New("overflow occurred while calculating the fee")
	errNotAtomicTx   = errors.New("decoded value is not an atomic tx")
	errNotCredential = errors.New("decoded value is not a secp256k1fx credential")
)

// Constants for calculating the gas consumed by atomic transactions
var (
	TxBytesGas   uint64 = 1
	EVMOutputGas uint64 = (common.AddressLength + wrappers.LongLen + hashing.HashLen) * TxBytesGas
	EVMInputGas  uint64 = (common.AddressLength+wrappers.LongLen+hashing.HashLen+wrappers.LongLen)*TxBytesGas + secp256k1fx.CostPerSignature
	// X2CRate is the conversion rate between the smallest denomination on the X-Chain
	// 1 nAVAX and the smallest denomination on the C-Chain 1 wei. Where 1 nAVAX = 1 gWei.
	X2CRate       = uint256.NewInt(X2CRateUint64)
	x2cRateMinus1 = uint256.NewInt(x2cRateMinus1Uint64)
)

// EVMOutput defines an output that is added to the EVM state created by import transactions
type EVMOutput struct {
	Address common.Address `json:"address"`
	Amount  uint64         `json:"amount"`
	AssetID ids.ID         `json:"assetID"`
}

func (o EVMOutput) Compare(other EVMOutput) int {
	addrComp := bytes.Compare(o.Address.Bytes(), other.Address.Bytes())
	if addrComp != 0 {
		return addrComp
	}
	return bytes.Compare(o.AssetID[:], other.AssetID[:])
}

func (o *EVMOutput) pack(p *wrappers.Packer) {
	p.PackFixedBytes(o.Address[:])
	p.PackLong(o.Amount)
	p.PackFixedBytes(o.AssetID[:])
}

func (o *EVMOutput) unpack(p *wrappers.Packer) {
	copy(o.Address[:], p.UnpackFixedBytes(common.AddressLength))
	o.Amount = p.UnpackLong()
	copy(o.AssetID[:], p.UnpackFixedBytes(ids.IDLen))
}

func (o *EVMOutput) Verify() error {
	switch {
	case o == nil:
		return errNilOutput
	case o.Amount == 0:
		return errNoValueOutput
	case o.AssetID == ids.Empty:
		return errEmptyAssetID
	}
	return nil
}

// EVMInput defines an input created from the EVM state to fund export transactions
type EVMInput struct {
	Address common.Address `json:"address"`
	Amount  uint64         `json:"amount"`
	AssetID ids.ID         `json:"assetID"`
	Nonce   uint64         `json:"nonce"`
}

func (i EVMInput) Compare(other EVMInput) int {
	addrComp := bytes.Compare(i.Address.Bytes(), other.Address.Bytes())
	if addrComp != 0 {
		return addrComp
	}
	return bytes.Compare(i.AssetID[:], other.AssetID[:])
}

func (i *EVMInput) pack(p *wrappers.Packer) {
	p.PackFixedBytes(i.Address[:])
	p.PackLong(i.Amount)
	p.PackFixedBytes(i.AssetID[:])
	p.PackLong(i.Nonce)
}

func (i *EVMInput) unpack(p *wrappers.Packer) {
	copy(i.Address[:], p.UnpackFixedBytes(common.AddressLength))
	i.Amount = p.UnpackLong()
	copy(i.AssetID[:], p.UnpackFixedBytes(ids.IDLen))
	i.Nonce = p.UnpackLong()
}

func (i *EVMInput) Verify() error {
	switch {
	case i == nil:
		return errNilInput
	case i.Amount == 0:
		return ErrNoValueInput
	case i.AssetID == ids.Empty:
		return errEmptyAssetID
	}
	return nil
}

// UnsignedAtomicTx is an unsigned operation that can be atomically accepted
type UnsignedAtomicTx interface {
	codec.Packable

	SetBytes(unsignedBytes []byte)
	Bytes() []byte

	// InputUTXOs returns the UTXOs this tx consumes
	InputUTXOs() set.Set[ids.ID]
	// GasUsed returns the gas charged for this tx. [fixedFee] adds
	// [AtomicTxIntrinsicGas].
	GasUsed(fixedFee bool) (uint64, error)
	// Burned returns the amount of [assetID] consumed and not produced.
	Burned(assetID ids.ID) (uint64, error)
	// Verify attempts to verify that the transaction is well formed
	Verify(networkID uint32, chainID ids.ID) error
	// NumCredentials is the number of credentials authorizing this tx.
	NumCredentials() int
}

// Metadata caches the unsigned bytes of a tx
type Metadata struct {
	unsignedBytes []byte
}

func (md *Metadata) SetBytes(unsignedBytes []byte) {
	md.unsignedBytes = unsignedBytes
}

func (md *Metadata) Bytes() []byte {
	return md.unsignedBytes
}

// Tx is a signed transaction
type Tx struct {
	// The body of this transaction
	UnsignedAtomicTx `json:"unsignedTx"`

	// The credentials of this transaction
	Creds []*secp256k1fx.Credential `json:"credentials"`

	id          ids.ID
	signedBytes []byte
}

func (tx *Tx) PackFields(c codec.Codec, p *wrappers.Packer) {
	c.PackInterface(p, tx.UnsignedAtomicTx)
	p.PackInt(uint32(len(tx.Creds)))
	for _, cred := range tx.Creds {
		c.PackInterface(p, cred)
	}
}

func (tx *Tx) UnpackFields(c codec.Codec, p *wrappers.Packer) {
	utx, ok := c.UnpackInterface(p).(UnsignedAtomicTx)
	if !ok {
		if !p.Errored() {
			p.Add(errNotAtomicTx)
		}
		return
	}
	tx.UnsignedAtomicTx = utx

	numCreds := p.UnpackLen(2 * wrappers.IntLen)
	if p.Errored() {
		return
	}
	tx.Creds = make([]*secp256k1fx.Credential, numCreds)
	for i := range tx.Creds {
		cred, ok := c.UnpackInterface(p).(*secp256k1fx.Credential)
		if !ok {
			if !p.Errored() {
				p.Add(errNotCredential)
			}
			return
		}
		tx.Creds[i] = cred
	}
}

// ExtractAtomicTx parses the signed tx encoded by [signedBytes].
func ExtractAtomicTx(c *codec.Manager, signedBytes []byte) (*Tx, error) {
	tx := &Tx{}
	if _, err := c.Unmarshal(signedBytes, tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal atomic transaction: %w", err)
	}
	unsignedBytes, err := c.MarshalInterface(CodecVersion, tx.UnsignedAtomicTx)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal UnsignedAtomicTx: %w", err)
	}
	tx.SetBytes(unsignedBytes, signedBytes)
	return tx, nil
}

// ExtractUnsignedAtomicTx parses the unsigned tx encoded by [unsignedBytes].
func ExtractUnsignedAtomicTx(c *codec.Manager, unsignedBytes []byte) (UnsignedAtomicTx, error) {
	v, _, err := c.UnmarshalInterface(unsignedBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal unsigned atomic transaction: %w", err)
	}
	utx, ok := v.(UnsignedAtomicTx)
	if !ok {
		return nil, errNotAtomicTx
	}
	utx.SetBytes(unsignedBytes)
	return utx, nil
}

// Initialize serializes [tx] and caches its bytes and ID.
func (tx *Tx) Initialize(c *codec.Manager) error {
	unsignedBytes, err := c.MarshalInterface(CodecVersion, tx.UnsignedAtomicTx)
	if err != nil {
		return fmt.Errorf("couldn't marshal UnsignedAtomicTx: %w", err)
	}
	signedBytes, err := c.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal Tx: %w", err)
	}
	tx.SetBytes(unsignedBytes, signedBytes)
	return nil
}

func (tx *Tx) SetBytes(unsignedBytes, signedBytes []byte) {
	tx.UnsignedAtomicTx.SetBytes(unsignedBytes)
	tx.signedBytes = signedBytes
	tx.id = hashing.ComputeHash256Array(signedBytes)
}

// ID returns the hash of the signed bytes
func (tx *Tx) ID() ids.ID {
	return tx.id
}

// SignedBytes returns the binary representation of this tx
func (tx *Tx) SignedBytes() []byte {
	return tx.signedBytes
}

func (tx *Tx) UnsignedBytes() []byte {
	return tx.UnsignedAtomicTx.Bytes()
}

// CalculateDynamicFee calculates the amount of AVAX that must be burned by
// an atomic transaction that consumes [cost] at [baseFee].
func CalculateDynamicFee(cost uint64, baseFee *big.Int) (uint64, error) {
	if baseFee == nil {
		return 0, errNilBaseFee
	}
	// fee = (cost * baseFee + [X2CRate] - 1) / [X2CRate]
	fee := new(big.Int).SetUint64(cost)
	fee.Mul(fee, baseFee)
	fee.Add(fee, x2cRateMinus1.ToBig())
	fee.Div(fee, X2CRate.ToBig())
	if !fee.IsUint64() {
		// the fee is more than can fit in a uint64
		return 0, errFeeOverflow
	}
	return fee.Uint64(), nil
}

func calcBytesCost(len int) uint64 {
	return uint64(len) * TxBytesGas
}

func packEVMOutputs(p *wrappers.Packer, outs []EVMOutput) {
	p.PackInt(uint32(len(outs)))
	for i := range outs {
		outs[i].pack(p)
	}
}

func unpackEVMOutputs(p *wrappers.Packer) []EVMOutput {
	n := p.UnpackLen(common.AddressLength + wrappers.LongLen + ids.IDLen)
	if p.Errored() {
		return nil
	}
	if n > MaxEVMIOs {
		p.Add(codec.ErrMaxSliceLenExceeded)
		return nil
	}
	outs := make([]EVMOutput, n)
	for i := range outs {
		outs[i].unpack(p)
	}
	return outs
}

func packEVMInputs(p *wrappers.Packer, ins []EVMInput) {
	p.PackInt(uint32(len(ins)))
	for i := range ins {
		ins[i].pack(p)
	}
}

func unpackEVMInputs(p *wrappers.Packer) []EVMInput {
	n := p.UnpackLen(common.AddressLength + 2*wrappers.LongLen + ids.IDLen)
	if p.Errored() {
		return nil
	}
	if n > MaxEVMIOs {
		p.Add(codec.ErrMaxSliceLenExceeded)
		return nil
	}
	ins := make([]EVMInput, n)
	for i := range ins {
		ins[i].unpack(p)
	}
	return ins
}

func isSortedAndUnique[T interface{ Compare(T) int }](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1].Compare(s[i]) >= 0 {
			return false
		}
	}
	return true
}

// burned sums [assetID] over [ins] minus [outs].
func burned(assetID ids.ID, spent uint64, outs []*avax.TransferableOutput) (uint64, error) {
	var produced uint64
	for _, out := range outs {
		if out.AssetID() != assetID {
			continue
		}
		var err error
		produced, err = safemath.Add(produced, out.Out.Amount())
		if err != nil {
			return 0, err
		}
	}
	return safemath.Sub(spent, produced)
}
