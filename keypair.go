package eccwallet

import "fmt"

// KeyPair holds a secp256k1 key pair in PEM text form: PKCS#8 for the private
// key, SubjectPublicKeyInfo for the public key.
type KeyPair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// GenerateKeyPair creates a fresh key pair. Every call draws new entropy.
func GenerateKeyPair() (*KeyPair, error) {
	privateKey, err := GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return newKeyPair(privateKey)
}

func newKeyPair(privateKey *PrivateKey) (*KeyPair, error) {
	privatePEM, err := privateKey.PEM()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	publicPEM, err := privateKey.PublicKey().PEM()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &KeyPair{PrivateKey: privatePEM, PublicKey: publicPEM}, nil
}

// ParseKeyPair validates both PEM texts and checks that the public key is the
// one derived from the private key.
func ParseKeyPair(privateKeyText, publicKeyText string) (*KeyPair, error) {
	privateKey, err := ParsePrivateKeyPEM(privateKeyText)
	if err != nil {
		return nil, err
	}
	publicKey, err := ParsePublicKeyPEM(publicKeyText)
	if err != nil {
		return nil, err
	}
	if !privateKey.PublicKey().Equal(publicKey) {
		return nil, fmt.Errorf("%w: the public key does not belong to the private key", ErrKeyParse)
	}
	return &KeyPair{PrivateKey: privateKeyText, PublicKey: publicKeyText}, nil
}
