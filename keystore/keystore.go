/*
Package keystore keeps an eccwallet key pair on disk.

A store is a directory holding public.pem and either private.pem (no
passphrase) or private.jwe (the private key PEM encrypted with a key derived
from the passphrase).
*/
package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sonnyparlin/eccwallet"
)

const (
	PublicKeyFile           = "public.pem"
	PrivateKeyFile          = "private.pem"
	EncryptedPrivateKeyFile = "private.jwe"
)

var ErrNotFound = fmt.Errorf("no key pair in the store")
var ErrWrongPassphrase = fmt.Errorf("wrong passphrase or corrupted key file")

// Store reads and writes a key pair in dir.
type Store struct {
	dir        string
	passphrase string
}

// New returns a store rooted at dir. An empty passphrase stores the private key
// in the clear.
func New(dir, passphrase string) *Store {
	return &Store{dir: dir, passphrase: passphrase}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) privateKeyPath() string {
	if s.passphrase != "" {
		return filepath.Join(s.dir, EncryptedPrivateKeyFile)
	}
	return filepath.Join(s.dir, PrivateKeyFile)
}

// stalePrivateKeyPath is the private key file of the other passphrase mode.
func (s *Store) stalePrivateKeyPath() string {
	if s.passphrase != "" {
		return filepath.Join(s.dir, PrivateKeyFile)
	}
	return filepath.Join(s.dir, EncryptedPrivateKeyFile)
}

// PublicKeyPath returns the location of the public key file.
func (s *Store) PublicKeyPath() string {
	return filepath.Join(s.dir, PublicKeyFile)
}

// Exists returns true if the store holds a private key, encrypted or not.
func (s *Store) Exists() bool {
	for _, name := range []string{PrivateKeyFile, EncryptedPrivateKeyFile} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
			return true
		}
	}
	return false
}

// Save writes the key pair, replacing what was there, including a private key
// saved under the other passphrase mode. The pair is validated first, and
// both files are staged before either one is replaced.
func (s *Store) Save(kp *eccwallet.KeyPair) error {
	if _, err := eccwallet.ParseKeyPair(kp.PrivateKey, kp.PublicKey); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %v", err)
	}

	content := kp.PrivateKey
	if s.passphrase != "" {
		var err error
		content, err = encryptWithPassphrase(s.passphrase, []byte(kp.PrivateKey))
		if err != nil {
			return err
		}
	}

	privateTmp, err := s.stage([]byte(content), 0600)
	if err != nil {
		return fmt.Errorf("failed to save private key: %v", err)
	}
	defer os.Remove(privateTmp)
	publicTmp, err := s.stage([]byte(kp.PublicKey), 0644)
	if err != nil {
		return fmt.Errorf("failed to save public key: %v", err)
	}
	defer os.Remove(publicTmp)

	if err := os.Rename(privateTmp, s.privateKeyPath()); err != nil {
		return fmt.Errorf("failed to save private key: %v", err)
	}
	if err := os.Rename(publicTmp, s.PublicKeyPath()); err != nil {
		// Never leave a private key next to a public key it does not match.
		_ = os.Remove(s.privateKeyPath())
		return fmt.Errorf("failed to save public key: %v", err)
	}
	if err := os.Remove(s.stalePrivateKeyPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove old private key: %v", err)
	}
	return nil
}

// stage writes data to a new temporary file in the store directory.
func (s *Store) stage(data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(s.dir, ".stage-*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	_, err = f.Write(data)
	if err == nil {
		err = f.Chmod(perm)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// Load reads the key pair back and checks that both halves belong together.
func (s *Store) Load() (*eccwallet.KeyPair, error) {
	data, err := os.ReadFile(s.privateKeyPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %v", err)
	}

	privateKey := data
	if s.passphrase != "" {
		privateKey, err = decryptWithPassphrase(s.passphrase, string(data))
		if err != nil {
			return nil, err
		}
	}

	publicKey, err := ReadPublicKey(s.PublicKeyPath())
	if err != nil {
		return nil, err
	}
	return eccwallet.ParseKeyPair(string(privateKey), publicKey)
}

// ReadPublicKey reads and validates a PEM public key file.
func ReadPublicKey(fileName string) (string, error) {
	data, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load public key: %v", err)
	}
	if _, err := eccwallet.ParsePublicKeyPEM(string(data)); err != nil {
		return "", err
	}
	return string(data), nil
}
