package eccwallet

import (
	encoding_asn1 "encoding/asn1"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// ecPrivateKeyDER builds a SEC1 ECPrivateKey with arbitrary contents.
func ecPrivateKeyDER(secret []byte, curve encoding_asn1.ObjectIdentifier, publicKey []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(ecPrivateKeyVersion)
		b.AddASN1OctetString(secret)
		if curve != nil {
			b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
				b.AddASN1ObjectIdentifier(curve)
			})
		}
		if publicKey != nil {
			b.AddASN1(asn1.Tag(1).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
				b.AddASN1BitString(publicKey)
			})
		}
	})
	return b.BytesOrPanic()
}

func Test_ParseECPrivateKey(t *testing.T) {
	assert := assert.New(t)

	secret, err := DecodeHex(opensslSecretHex)
	assert.NoError(err)
	other, err := ParsePublicKeyPEM(otherPublicKeyPEM)
	assert.NoError(err)
	own, err := ParsePublicKeyPEM(opensslPublicKeyPEM)
	assert.NoError(err)

	// Neither the curve nor the public key are mandatory.
	key, err := parseECPrivateKey(ecPrivateKeyDER(secret, nil, nil))
	assert.NoError(err)
	assert.Equal(opensslSecretHex, EncodeHex(key.Serialize()))

	_, err = parseECPrivateKey(ecPrivateKeyDER(secret, oidSecp256k1, own.Bytes()))
	assert.NoError(err)
	_, err = parseECPrivateKey(ecPrivateKeyDER(secret, oidSecp256k1, own.CompressedBytes()))
	assert.NoError(err)

	_, err = parseECPrivateKey(ecPrivateKeyDER(secret, nil, other.Bytes()))
	assert.ErrorContains(err, "does not match")

	p256 := encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	_, err = parseECPrivateKey(ecPrivateKeyDER(secret, p256, nil))
	assert.ErrorContains(err, "unsupported curve")

	_, err = parseECPrivateKey(ecPrivateKeyDER(secret[:31], nil, nil))
	assert.Error(err)
	_, err = parseECPrivateKey(ecPrivateKeyDER(make([]byte, 32), nil, nil))
	assert.ErrorContains(err, "out of range")
}

func Test_MarshalPKCS8_EmbedsPublicKey(t *testing.T) {
	assert := assert.New(t)

	key, err := GeneratePrivateKey()
	assert.NoError(err)
	der, err := marshalPKCS8(key.privateKey)
	assert.NoError(err)

	parsed, err := parsePKCS8(der)
	assert.NoError(err)
	assert.True(parsed.PubKey().IsEqual(key.privateKey.PubKey()))

	_, err = parsePKCS8(append(der, 0x00))
	assert.Error(err)
}

func Test_DecodePEM_Surroundings(t *testing.T) {
	assert := assert.New(t)

	block, err := decodePEM("\n\t " + opensslPublicKeyPEM + "\n\n")
	assert.NoError(err)
	assert.Equal(pemTypePublicKey, block.Type)

	_, err = decodePEM("junk before\n" + opensslPublicKeyPEM)
	assert.ErrorContains(err, "before the PEM block")
	_, err = decodePEM(opensslPublicKeyPEM + "junk after\n")
	assert.ErrorContains(err, "after the")
}
