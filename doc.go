/*
Package eccwallet is a small secp256k1 wallet: it generates key pairs, hashes
messages and signs or verifies the resulting digests (ECDSA, as used by Bitcoin).

The operations are:

-- Generating a fresh key pair, exported as PEM text (PKCS#8 private key,
SubjectPublicKeyInfo public key)

-- Hashing arbitrary data with SHA-256

-- Signing a digest with the private key; the DER signature travels as hex

-- Verifying a signature against a digest and a public key supplied by the caller

Messages are never signed directly. Hash first, then sign the digest.

See the examples for more information.
*/
package eccwallet
