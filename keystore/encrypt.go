package keystore

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"golang.org/x/crypto/scrypt"
)

const (
	// Key derivation parameters.
	deriveKey_N      = 16384
	deriveKey_r      = 8
	deriveKey_p      = 1
	deriveKey_keyLen = 32

	saltLength = 32
)

// saltHeader carries the scrypt salt in the JWE protected header, so it is
// covered by the authentication tag.
const saltHeader jose.HeaderKey = "x-salt"

// makeSalt creates random 32 bytes salt.
func makeSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// deriveKey creates a 32 byte symmetric encryption key from passphrase.
// Key derivation algorithm is described in https://www.tarsnap.com/scrypt/scrypt.pdf.
func deriveKey(passphrase string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, deriveKey_N, deriveKey_r, deriveKey_p,
		deriveKey_keyLen)
}

// encryptWithPassphrase seals content into a compact JWE (direct key agreement,
// A256GCM) keyed by scrypt(passphrase, salt).
func encryptWithPassphrase(passphrase string, content []byte) (string, error) {
	salt, err := makeSalt()
	if err != nil {
		return "", fmt.Errorf("failed to create salt: %v", err)
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %v", err)
	}
	opts := (&jose.EncrypterOptions{}).WithHeader(saltHeader,
		base64.RawURLEncoding.EncodeToString(salt))
	encrypter, err := jose.NewEncrypter(jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key}, opts)
	if err != nil {
		return "", fmt.Errorf("failed to create encrypter: %v", err)
	}
	object, err := encrypter.Encrypt(content)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %v", err)
	}
	return object.CompactSerialize()
}

// decryptWithPassphrase reverses encryptWithPassphrase.
func decryptWithPassphrase(passphrase string, content string) ([]byte, error) {
	object, err := jose.ParseEncrypted(content)
	if err != nil {
		return nil, fmt.Errorf("invalid content: %v", err)
	}
	saltStr, ok := object.Header.ExtraHeaders[saltHeader].(string)
	if !ok {
		return nil, fmt.Errorf("invalid content: missing %s header", saltHeader)
	}
	salt, err := base64.RawURLEncoding.DecodeString(saltStr)
	if err != nil || len(salt) != saltLength {
		return nil, fmt.Errorf("invalid content: bad salt")
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %v", err)
	}
	plaintext, err := object.Decrypt(key)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}
