package eccwallet

import (
	"fmt"

	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// MaxSignatureSize is the longest DER encoded secp256k1 ECDSA signature:
// a SEQUENCE header plus two INTEGERs of up to 33 bytes each.
const MaxSignatureSize = 72

// Signature is a DER encoded ECDSA signature in its transport form: the raw
// length plus the lowercase hex rendering. Decode returns the raw bytes.
//
// Hex is case-insensitive, since OpenSSL prints uppercase. Changing only the
// case of a hex digit leaves the signature bytes unchanged, so such an edit
// still verifies; any edit that changes a byte does not.
// See https://en.wikipedia.org/wiki/Elliptic_Curve_Digital_Signature_Algorithm
type Signature struct {
	Size int    `json:"size"`
	Hex  string `json:"hex"`
}

func newSignature(der []byte) Signature {
	return Signature{Size: len(der), Hex: EncodeHex(der)}
}

// Decode turns the hex form back into the raw DER bytes. It fails if the hex is
// malformed or does not decode to exactly Size bytes.
func (sig Signature) Decode() ([]byte, error) {
	if sig.Size <= 0 || sig.Size > MaxSignatureSize {
		return nil, fmt.Errorf("%w: invalid signature size %d", ErrVerify, sig.Size)
	}
	der, err := DecodeHex(sig.Hex)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed signature hex, %v", ErrVerify, err)
	}
	if len(der) != sig.Size {
		return nil, fmt.Errorf("%w: signature decodes to %d bytes, expected %d",
			ErrVerify, len(der), sig.Size)
	}
	return der, nil
}

// String returns the hex form.
func (sig Signature) String() string {
	return sig.Hex
}

// Verify verifies the signature using the public key and the hash of the data.
// A signature that is well formed but does not match returns false, nil.
// Malformed input (wrong hash length, bad hex, not DER) returns ErrVerify.
func (pbk *PublicKey) Verify(hash []byte, sig Signature) (bool, error) {
	if len(hash) != DigestSize {
		return false, fmt.Errorf("%w: %w, got %d", ErrVerify, ErrInvalidDigest, len(hash))
	}
	der, err := sig.Decode()
	if err != nil {
		return false, err
	}
	parsed, err := btcecdsa.ParseDERSignature(der)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerify, err)
	}
	return parsed.Verify(hash, pbk.publicKey), nil
}
