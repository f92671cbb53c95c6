package eccwallet

import (
	"bytes"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
)

// Version byte of a Bitcoin mainnet pay-to-pubkey-hash address.
const bitcoinP2PKHVersion = 0x00

// PublicKey represents a secp256k1 public key.
type PublicKey struct {
	publicKey *btcec.PublicKey
}

// NewPublicKeyFromBytes parses a SEC encoded public key, compressed or not.
// The point must lie on the curve.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	publicKey, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	return &PublicKey{publicKey: publicKey}, nil
}

// ParsePublicKeyPEM parses a public key from a "PUBLIC KEY" PEM block
// (SubjectPublicKeyInfo).
func ParsePublicKeyPEM(text string) (*PublicKey, error) {
	block, err := decodePEM(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	if block.Type != pemTypePublicKey {
		return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrKeyParse, block.Type)
	}
	publicKey, err := parsePKIX(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	return &PublicKey{publicKey: publicKey}, nil
}

// PEM returns the key as a "PUBLIC KEY" PEM block.
func (pbk *PublicKey) PEM() (string, error) {
	der, err := marshalPKIX(pbk.publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode public key, %v", err)
	}
	return encodePEM(pemTypePublicKey, der), nil
}

// Bytes returns the key in SEC uncompressed format (65 bytes).
func (pbk *PublicKey) Bytes() []byte {
	return pbk.publicKey.SerializeUncompressed()
}

// CompressedBytes returns the key in SEC compressed format (33 bytes).
func (pbk *PublicKey) CompressedBytes() []byte {
	return pbk.publicKey.SerializeCompressed()
}

// X returns X component of the public key.
func (pbk *PublicKey) X() *big.Int {
	return pbk.publicKey.X()
}

// Y returns Y component of the public key.
func (pbk *PublicKey) Y() *big.Int {
	return pbk.publicKey.Y()
}

// BitcoinAddress returns the P2PKH Bitcoin address for the compressed key.
func (pbk *PublicKey) BitcoinAddress() string {
	return base58.CheckEncode(Hash160(pbk.CompressedBytes()), bitcoinP2PKHVersion)
}

// EthereumAddress returns the checksummed Ethereum address for this key.
func (pbk *PublicKey) EthereumAddress() string {
	return crypto.PubkeyToAddress(*pbk.publicKey.ToECDSA()).Hex()
}

// Equal returns true if this key is equal to the other key.
func (pbk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pbk.publicKey.IsEqual(other.publicKey)
}

// EqualCompressedBytes returns true if this key is equal to the other,
// given as serialized compressed representation.
func (pbk *PublicKey) EqualCompressedBytes(other []byte) bool {
	return bytes.Equal(pbk.CompressedBytes(), other)
}

// ToECDSA returns this key as crypto/ecdsa public key.
func (pbk *PublicKey) ToECDSA() *ecdsa.PublicKey {
	return pbk.publicKey.ToECDSA()
}
