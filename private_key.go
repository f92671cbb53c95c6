package eccwallet

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// PrivateKey represents a secp256k1 private key.
type PrivateKey struct {
	privateKey *btcec.PrivateKey
}

// GeneratePrivateKey creates a new random private key.
func GeneratePrivateKey() (*PrivateKey, error) {
	return generatePrivateKey(rand.Reader)
}

// generatePrivateKey draws 32 bytes from rand until they form a valid scalar,
// i.e. 0 < d < N.
func generatePrivateKey(rand io.Reader) (*PrivateKey, error) {
	var secret [btcec.PrivKeyBytesLen]byte
	d := new(big.Int)
	for {
		if _, err := io.ReadFull(rand, secret[:]); err != nil {
			return nil, fmt.Errorf("%w: failed to read entropy, %v", ErrKeyGeneration, err)
		}
		d.SetBytes(secret[:])
		if d.Sign() > 0 && d.Cmp(btcec.S256().N) < 0 {
			break
		}
	}
	privateKey, _ := btcec.PrivKeyFromBytes(secret[:])
	return &PrivateKey{privateKey: privateKey}, nil
}

// privateKeyFromScalar checks that b is a valid 32 byte scalar before turning it
// into a key. btcec.PrivKeyFromBytes would silently reduce it modulo N.
func privateKeyFromScalar(b []byte) (*btcec.PrivateKey, error) {
	d := new(big.Int).SetBytes(b)
	if d.Sign() == 0 || d.Cmp(btcec.S256().N) >= 0 {
		return nil, fmt.Errorf("private key is out of range")
	}
	privateKey, _ := btcec.PrivKeyFromBytes(b)
	return privateKey, nil
}

// NewPrivateKeyFromSecret creates a private key from secret, which must be in
// the range [1, N-1].
func NewPrivateKeyFromSecret(secret *big.Int) (*PrivateKey, error) {
	if secret == nil || secret.Sign() <= 0 || secret.BitLen() > 256 {
		return nil, fmt.Errorf("%w: private key is out of range", ErrKeyParse)
	}
	b := make([]byte, btcec.PrivKeyBytesLen)
	privateKey, err := privateKeyFromScalar(secret.FillBytes(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	return &PrivateKey{privateKey: privateKey}, nil
}

// ParsePrivateKeyPEM parses a private key from its PEM encoding. Both PKCS#8
// ("PRIVATE KEY") and SEC1 ("EC PRIVATE KEY") blocks are accepted.
func ParsePrivateKeyPEM(text string) (*PrivateKey, error) {
	block, err := decodePEM(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	var privateKey *btcec.PrivateKey
	switch block.Type {
	case pemTypePrivateKey:
		privateKey, err = parsePKCS8(block.Bytes)
	case pemTypeECPrivateKey:
		privateKey, err = parseECPrivateKey(block.Bytes)
	default:
		err = fmt.Errorf("unexpected PEM block type %q", block.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyParse, err)
	}
	return &PrivateKey{privateKey: privateKey}, nil
}

// PEM returns the key as an unencrypted PKCS#8 PEM block.
func (pk *PrivateKey) PEM() (string, error) {
	der, err := marshalPKCS8(pk.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode private key, %v", err)
	}
	return encodePEM(pemTypePrivateKey, der), nil
}

// Secret returns the private key's secret.
func (pk *PrivateKey) Secret() *big.Int {
	return new(big.Int).SetBytes(pk.privateKey.Serialize())
}

// PublicKey returns the public key derived from this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{publicKey: pk.privateKey.PubKey()}
}

// Sign signs (ECDSA) the hash using the private key and returns the signature.
// The hash must be a 32 byte digest; raw messages are rejected.
// The nonce is derived per RFC 6979, so signing is deterministic.
func (pk *PrivateKey) Sign(hash []byte) (Signature, error) {
	if len(hash) != DigestSize {
		return Signature{}, fmt.Errorf("%w: %w, got %d", ErrSign, ErrInvalidDigest, len(hash))
	}
	der := btcecdsa.Sign(pk.privateKey, hash).Serialize()
	return newSignature(der), nil
}

// Equal returns true if this key is equal to the other key.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	return subtle.ConstantTimeCompare(pk.privateKey.Serialize(), other.privateKey.Serialize()) == 1
}

// ToECDSA returns this key as crypto/ecdsa private key.
func (pk *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	return pk.privateKey.ToECDSA()
}
