package eccwallet

import "fmt"

// Sign parses privateKeyText and signs digest with it. A key that does not
// parse yields an error matching both ErrSign and ErrKeyParse.
func Sign(privateKeyText string, digest Digest) (Signature, error) {
	privateKey, err := ParsePrivateKeyPEM(privateKeyText)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: %w", ErrSign, err)
	}
	return privateKey.Sign(digest[:])
}

// Verify checks sig over digest against publicKeyText. Only the supplied key is
// used. A mismatch returns false, nil; malformed input returns ErrVerify.
func Verify(digest Digest, sig Signature, publicKeyText string) (bool, error) {
	publicKey, err := ParsePublicKeyPEM(publicKeyText)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrVerify, err)
	}
	return publicKey.Verify(digest[:], sig)
}

// Wallet owns a key pair generated when the wallet is created. It never
// changes afterwards, and every operation parses its own key handle, so a
// Wallet can be shared between goroutines.
type Wallet struct {
	keys KeyPair
}

// NewWallet creates a wallet with a freshly generated key pair.
func NewWallet() (*Wallet, error) {
	keys, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return &Wallet{keys: *keys}, nil
}

// NewWalletFromKeyPair wraps an existing key pair, after checking it.
func NewWalletFromKeyPair(kp *KeyPair) (*Wallet, error) {
	keys, err := ParseKeyPair(kp.PrivateKey, kp.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Wallet{keys: *keys}, nil
}

// KeyPair returns a copy of the wallet's key pair.
func (w *Wallet) KeyPair() KeyPair {
	return w.keys
}

// PublicKey returns the wallet's public key in PEM form.
func (w *Wallet) PublicKey() string {
	return w.keys.PublicKey
}

// Sign signs digest with the wallet's private key.
func (w *Wallet) Sign(digest Digest) (Signature, error) {
	return Sign(w.keys.PrivateKey, digest)
}

// Verify checks sig over digest against the wallet's own public key.
func (w *Wallet) Verify(digest Digest, sig Signature) (bool, error) {
	return Verify(digest, sig, w.keys.PublicKey)
}
