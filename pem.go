package eccwallet

import (
	"bytes"
	encoding_asn1 "encoding/asn1"
	"encoding/pem"
	"fmt"
	"unicode"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// PEM block types. Private keys are written as unencrypted PKCS#8, which is what
// `openssl genpkey` and PEM_write_PrivateKey produce.
const (
	pemTypePrivateKey   = "PRIVATE KEY"
	pemTypeECPrivateKey = "EC PRIVATE KEY"
	pemTypePublicKey    = "PUBLIC KEY"
)

const ecPrivateKeyVersion = 1

var (
	oidPublicKeyECDSA = encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1      = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

// See RFC 5480, section 2.1.1.
func addAlgorithmIdentifier(b *cryptobyte.Builder) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oidPublicKeyECDSA)
		b.AddASN1ObjectIdentifier(oidSecp256k1)
	})
}

// addECPrivateKey writes the SEC1 ECPrivateKey structure (RFC 5915). The curve
// parameters are left out when the structure is nested in PKCS#8, since the
// outer AlgorithmIdentifier already names the curve.
func addECPrivateKey(b *cryptobyte.Builder, key *btcec.PrivateKey, withCurve bool) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(ecPrivateKeyVersion)
		b.AddASN1OctetString(key.Serialize())
		if withCurve {
			b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
				b.AddASN1ObjectIdentifier(oidSecp256k1)
			})
		}
		b.AddASN1(asn1.Tag(1).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
			b.AddASN1BitString(key.PubKey().SerializeUncompressed())
		})
	})
}

// marshalPKCS8 returns the DER encoding of the PKCS#8 PrivateKeyInfo (RFC 5208).
func marshalPKCS8(key *btcec.PrivateKey) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		addAlgorithmIdentifier(b)
		b.AddASN1(asn1.OCTET_STRING, func(b *cryptobyte.Builder) {
			addECPrivateKey(b, key, false)
		})
	})
	return b.Bytes()
}

// marshalPKIX returns the DER encoding of the SubjectPublicKeyInfo (RFC 5280).
func marshalPKIX(key *btcec.PublicKey) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addAlgorithmIdentifier(b)
		b.AddASN1BitString(key.SerializeUncompressed())
	})
	return b.Bytes()
}

func parseAlgorithmIdentifier(s *cryptobyte.String) error {
	var algo cryptobyte.String
	var algoOID, curveOID encoding_asn1.ObjectIdentifier
	if !s.ReadASN1(&algo, asn1.SEQUENCE) ||
		!algo.ReadASN1ObjectIdentifier(&algoOID) {
		return fmt.Errorf("malformed algorithm identifier")
	}
	if !algoOID.Equal(oidPublicKeyECDSA) {
		return fmt.Errorf("unsupported key algorithm %v", algoOID)
	}
	if !algo.ReadASN1ObjectIdentifier(&curveOID) || !algo.Empty() {
		return fmt.Errorf("malformed curve parameters")
	}
	if !curveOID.Equal(oidSecp256k1) {
		return fmt.Errorf("unsupported curve %v", curveOID)
	}
	return nil
}

// parseECPrivateKey parses a SEC1 ECPrivateKey. The embedded public key, when
// present, must match the one derived from the private scalar.
func parseECPrivateKey(der []byte) (*btcec.PrivateKey, error) {
	input := cryptobyte.String(der)
	var s cryptobyte.String
	var version int
	var secret []byte
	if !input.ReadASN1(&s, asn1.SEQUENCE) || !input.Empty() ||
		!s.ReadASN1Integer(&version) ||
		!s.ReadASN1Bytes(&secret, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("malformed EC private key")
	}
	if version != ecPrivateKeyVersion {
		return nil, fmt.Errorf("unsupported EC private key version %d", version)
	}
	if len(secret) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("invalid private key length %d", len(secret))
	}

	var params, pub cryptobyte.String
	var hasParams, hasPub bool
	if !s.ReadOptionalASN1(&params, &hasParams, asn1.Tag(0).Constructed().ContextSpecific()) ||
		!s.ReadOptionalASN1(&pub, &hasPub, asn1.Tag(1).Constructed().ContextSpecific()) ||
		!s.Empty() {
		return nil, fmt.Errorf("malformed EC private key")
	}
	if hasParams {
		var curveOID encoding_asn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&curveOID) || !params.Empty() {
			return nil, fmt.Errorf("malformed curve parameters")
		}
		if !curveOID.Equal(oidSecp256k1) {
			return nil, fmt.Errorf("unsupported curve %v", curveOID)
		}
	}

	key, err := privateKeyFromScalar(secret)
	if err != nil {
		return nil, err
	}
	if hasPub {
		var embedded []byte
		if !pub.ReadASN1BitStringAsBytes(&embedded) || !pub.Empty() {
			return nil, fmt.Errorf("malformed embedded public key")
		}
		embeddedKey, err := btcec.ParsePubKey(embedded)
		if err != nil {
			return nil, fmt.Errorf("invalid embedded public key, %v", err)
		}
		if !embeddedKey.IsEqual(key.PubKey()) {
			return nil, fmt.Errorf("embedded public key does not match the private key")
		}
	}
	return key, nil
}

func parsePKCS8(der []byte) (*btcec.PrivateKey, error) {
	input := cryptobyte.String(der)
	var s cryptobyte.String
	var version int
	if !input.ReadASN1(&s, asn1.SEQUENCE) || !input.Empty() ||
		!s.ReadASN1Integer(&version) {
		return nil, fmt.Errorf("malformed PKCS#8 private key")
	}
	if version != 0 {
		return nil, fmt.Errorf("unsupported PKCS#8 version %d", version)
	}
	if err := parseAlgorithmIdentifier(&s); err != nil {
		return nil, err
	}
	var inner []byte
	if !s.ReadASN1Bytes(&inner, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("malformed PKCS#8 private key")
	}
	// Optional attributes may follow; they carry nothing we use.
	return parseECPrivateKey(inner)
}

func parsePKIX(der []byte) (*btcec.PublicKey, error) {
	input := cryptobyte.String(der)
	var s cryptobyte.String
	if !input.ReadASN1(&s, asn1.SEQUENCE) || !input.Empty() {
		return nil, fmt.Errorf("malformed public key info")
	}
	if err := parseAlgorithmIdentifier(&s); err != nil {
		return nil, err
	}
	var point []byte
	if !s.ReadASN1BitStringAsBytes(&point) || !s.Empty() {
		return nil, fmt.Errorf("malformed public key")
	}
	return btcec.ParsePubKey(point)
}

// encodePEM wraps der in a PEM block of the given type.
func encodePEM(blockType string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}

// decodePEM returns the single PEM block in text. Anything other than
// whitespace before or after the block is rejected.
func decodePEM(text string) (*pem.Block, error) {
	data := bytes.TrimLeftFunc([]byte(text), unicode.IsSpace)
	if len(data) != 0 && !bytes.HasPrefix(data, []byte("-----BEGIN ")) {
		return nil, fmt.Errorf("unexpected data before the PEM block")
	}
	block, rest := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	if len(bytes.TrimSpace(rest)) != 0 {
		return nil, fmt.Errorf("unexpected data after the %q PEM block", block.Type)
	}
	if len(block.Headers) != 0 {
		return nil, fmt.Errorf("encrypted or annotated PEM blocks are not supported")
	}
	return block, nil
}
