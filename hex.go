package eccwallet

import "encoding/hex"

// EncodeHex renders b as lowercase hex, two characters per byte, no separators.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex is the inverse of EncodeHex. Upper case input is accepted.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
