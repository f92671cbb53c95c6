package eccwallet

import "fmt"

var ErrKeyGeneration = fmt.Errorf("key generation failed")
var ErrKeyParse = fmt.Errorf("malformed key")
var ErrSign = fmt.Errorf("signing failed")
var ErrVerify = fmt.Errorf("verification failed")
var ErrInvalidDigest = fmt.Errorf("the digest must be 32 bytes long")
