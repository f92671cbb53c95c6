package eccwallet

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

const opensslPublicPointHex = "04" +
	"2486cfc0cdec1c122976c5e7da23aedeff1a8a7d5bb4508e3112fa92a2ca7e49" +
	"0d2291771dda7ad9ae4ae3f312874b2e9eb9ba4dec0b5726de325d0952cafe87"

// spki builds a SubjectPublicKeyInfo around an arbitrary point.
func spki(point []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addAlgorithmIdentifier(b)
		b.AddASN1BitString(point)
	})
	return b.BytesOrPanic()
}

func Test_PublicKey_ParseOpenSSL(t *testing.T) {
	assert := assert.New(t)

	key, err := ParsePublicKeyPEM(opensslPublicKeyPEM)
	assert.NoError(err)
	assert.Equal(opensslPublicPointHex, EncodeHex(key.Bytes()))
	assert.Len(key.CompressedBytes(), 33)

	text, err := key.PEM()
	assert.NoError(err)
	assert.Equal(opensslPublicKeyPEM, text)
}

func Test_PublicKey_PEMRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for i := 0; i < 20; i++ {
		privateKey, err := GeneratePrivateKey()
		assert.NoError(err)
		text, err := privateKey.PublicKey().PEM()
		assert.NoError(err)
		assert.True(strings.HasPrefix(text, "-----BEGIN PUBLIC KEY-----\n"))

		parsed, err := ParsePublicKeyPEM(text)
		assert.NoError(err)
		assert.True(privateKey.PublicKey().Equal(parsed))
	}
}

func Test_PublicKey_ParseErrors(t *testing.T) {
	assert := assert.New(t)

	point, err := DecodeHex(opensslPublicPointHex)
	assert.NoError(err)
	offCurve := append([]byte(nil), point...)
	offCurve[64] ^= 0x01

	tests := map[string]string{
		"empty":         "",
		"not PEM":       "-----BEGIN PUBLIC KEY-----\nnope",
		"private key":   opensslPrivateKeyPEM,
		"other curve":   p256PublicKeyPEM,
		"leading data":  "junk before\n" + opensslPublicKeyPEM,
		"trailing data": opensslPublicKeyPEM + "-----BEGIN PUBLIC KEY-----\n",
		"off curve":     encodePEM(pemTypePublicKey, spki(offCurve)),
		"short point":   encodePEM(pemTypePublicKey, spki(point[:40])),
		"garbage DER":   encodePEM(pemTypePublicKey, []byte("not DER at all")),
	}
	for name, text := range tests {
		key, err := ParsePublicKeyPEM(text)
		assert.Nil(key, name)
		assert.True(errors.Is(err, ErrKeyParse), name)
	}
}

func Test_PublicKey_FromBytes(t *testing.T) {
	assert := assert.New(t)

	key, err := ParsePublicKeyPEM(opensslPublicKeyPEM)
	assert.NoError(err)

	uncompressed, err := NewPublicKeyFromBytes(key.Bytes())
	assert.NoError(err)
	assert.True(key.Equal(uncompressed))

	compressed, err := NewPublicKeyFromBytes(key.CompressedBytes())
	assert.NoError(err)
	assert.True(key.Equal(compressed))
	assert.True(key.EqualCompressedBytes(compressed.CompressedBytes()))

	_, err = NewPublicKeyFromBytes([]byte{0x02, 0x01})
	assert.True(errors.Is(err, ErrKeyParse))
}

func Test_PublicKey_Equal(t *testing.T) {
	assert := assert.New(t)

	key1, err := ParsePublicKeyPEM(opensslPublicKeyPEM)
	assert.NoError(err)
	key2, err := ParsePublicKeyPEM(otherPublicKeyPEM)
	assert.NoError(err)

	assert.True(key1.Equal(key1))
	assert.False(key1.Equal(key2))
	assert.False(key1.Equal(nil))
	assert.False(key1.EqualCompressedBytes(key2.CompressedBytes()))
}

func Test_PublicKey_Address(t *testing.T) {
	assert := assert.New(t)

	key, err := NewPrivateKeyFromSecret(big.NewInt(1))
	assert.NoError(err)
	assert.Equal("1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", key.PublicKey().BitcoinAddress())
	assert.Equal("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", key.PublicKey().EthereumAddress())

	secret, _ := new(big.Int).SetString("12345deadbeef", 16)
	key, err = NewPrivateKeyFromSecret(secret)
	assert.NoError(err)
	assert.Equal("1F1Pn2y6pDb68E5nYJJeba4TLg2U7B6KF1", key.PublicKey().BitcoinAddress())
}

func Test_PublicKey_ToECDSA(t *testing.T) {
	assert := assert.New(t)

	key, err := ParsePublicKeyPEM(opensslPublicKeyPEM)
	assert.NoError(err)
	ecdsaKey := key.ToECDSA()
	assert.Equal(0, ecdsaKey.X.Cmp(key.X()))
	assert.Equal(0, ecdsaKey.Y.Cmp(key.Y()))
}
